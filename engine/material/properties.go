package material

// DefaultShader is the shader every Binary Opacity Grid material renders with.
const DefaultShader = "Unlit/BinaryOpacityGrid"

// Shader property names.
const (
	PropTriplane           = "_Triplane"
	PropSceneScaleFactor   = "_SceneScaleFactor"
	PropDisplayMode        = "_DisplayMode"
	PropTriplaneVoxelSize  = "_TriplaneVoxelSize"
	PropTriplaneResolution = "_TriplaneResolution"
	PropRangeDiffuseRgbMin = "_RangeDiffuseRgbMin"
	PropRangeDiffuseRgbMax = "_RangeDiffuseRgbMax"
	PropRangeColorMin      = "_RangeColorMin"
	PropRangeColorMax      = "_RangeColorMax"
	PropRangeMeanMin       = "_RangeMeanMin"
	PropRangeMeanMax       = "_RangeMeanMax"
	PropRangeScaleMin      = "_RangeScaleMin"
	PropRangeScaleMax      = "_RangeScaleMax"
)

// DisplayModeDefault is the initial _DisplayMode of an imported material.
const DisplayModeDefault int32 = 0
