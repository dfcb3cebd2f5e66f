package composer

import "github.com/Carmen-Shannon/oxy-bog/engine/game_object"

// ComposerBuilderOption is a functional option for configuring a Composer via NewComposer.
type ComposerBuilderOption func(*composer)

// WithShader is an option builder that sets the shader of composed materials.
// Empty names are ignored.
//
// Parameters:
//   - shader: the shader name (default material.DefaultShader)
//
// Returns:
//   - ComposerBuilderOption: a function that applies the shader to a composer
func WithShader(shader string) ComposerBuilderOption {
	return func(c *composer) {
		if shader != "" {
			c.shader = shader
		}
	}
}

// WithDisplayMode is an option builder that sets the initial _DisplayMode of composed materials.
//
// Parameters:
//   - mode: the display mode (default 0)
//
// Returns:
//   - ComposerBuilderOption: a function that applies the display mode to a composer
func WithDisplayMode(mode int32) ComposerBuilderOption {
	return func(c *composer) {
		c.displayMode = mode
	}
}

// WithRenderSettings is an option builder that sets the lighting flags of every mesh node.
//
// Parameters:
//   - settings: the render settings (default game_object.UnlitRenderSettings)
//
// Returns:
//   - ComposerBuilderOption: a function that applies the settings to a composer
func WithRenderSettings(settings game_object.RenderSettings) ComposerBuilderOption {
	return func(c *composer) {
		c.renderSettings = settings
	}
}
