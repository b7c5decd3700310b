package attr

// SceneID identifies a 3D scene asset file in the scene store.
type SceneID struct {
	ID string
}

func (SceneID) attrValue()     {}
func (SceneID) invariantAttr() {}

// CameraSeed seeds deterministic camera placement inside the host.
type CameraSeed struct {
	Seed uint64
}

func (CameraSeed) attrValue()     {}
func (CameraSeed) invariantAttr() {}

// ContentSeed seeds deterministic material/content variation. Reserved:
// neither shipped task consumes it yet, but it is part of the identity
// model so the dataset format does not need to change when one does.
type ContentSeed struct {
	Seed uint64
}

func (ContentSeed) attrValue()     {}
func (ContentSeed) invariantAttr() {}

// HDRIName identifies an environment map plus its Z rotation in degrees
// relative to the camera heading.
type HDRIName struct {
	Name      string
	ZRotation float64
}

func (HDRIName) attrValue()   {}
func (HDRIName) variantAttr() {}

// VirtualLight describes one synthetic area light. Fields are sampled
// independently of each other; correlations between size, direction,
// intensity and color are deliberately not modeled.
type VirtualLight struct {
	Size      LightSize
	Direction LightDirection
	Intensity LightIntensity
	Color     BlackbodyLightColor
}

func (VirtualLight) attrValue()   {}
func (VirtualLight) variantAttr() {}
