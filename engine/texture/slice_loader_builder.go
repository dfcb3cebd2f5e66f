package texture

// SliceLoaderBuilderOption is a functional option for configuring a SliceLoader via NewSliceLoader.
type SliceLoaderBuilderOption func(*sliceLoader)

// WithChannelChunks is an option builder that sets the number of chunk layers read per axis.
// Values < 1 are ignored.
//
// Parameters:
//   - n: the chunk count (default DefaultChannelChunks)
//
// Returns:
//   - SliceLoaderBuilderOption: a function that applies the chunk count to a loader
func WithChannelChunks(n int) SliceLoaderBuilderOption {
	return func(l *sliceLoader) {
		if n < 1 {
			return
		}
		l.channelChunks = n
	}
}

// WithFileNamer is an option builder that overrides how (axis, chunk) pairs map to file names.
//
// Parameters:
//   - namer: the naming function (default SliceFileName)
//
// Returns:
//   - SliceLoaderBuilderOption: a function that applies the namer to a loader
func WithFileNamer(namer func(axis, chunk int) string) SliceLoaderBuilderOption {
	return func(l *sliceLoader) {
		if namer != nil {
			l.namer = namer
		}
	}
}
