package diag

// Machine-readable codes for the pipeline's failure taxonomy.
const (
	// CodeMissingSource: a slot is enabled but has no bound texture.
	CodeMissingSource = "missing-source"
	// CodeUnsupportedFormat: the source extension is neither copyable nor convertible.
	CodeUnsupportedFormat = "unsupported-format"
	// CodeNotFound: the source file does not exist.
	CodeNotFound = "not-found"
	// CodeDimensionMismatch: fused inputs differ in size; output clamps to the minimum.
	CodeDimensionMismatch = "dimension-mismatch"
	// CodeDecodeError: a bitmap failed to decode and is treated as absent.
	CodeDecodeError = "decode-error"
	// CodeAmbiguousBlend: both sub-slots of a blend node carry textures; first wins.
	CodeAmbiguousBlend = "ambiguous-blend-textures"
	// CodeMipChain: a DDS mip chain is incomplete; auto mip generation is disabled.
	CodeMipChain = "mip-chain"
	// CodeMapChannel: a UV map channel beyond 2 was requested.
	CodeMapChannel = "map-channel"
	// CodeForcedBlend: a TIFF base color silently forces a blended render mode.
	CodeForcedBlend = "forced-blend-mode"
	// CodeCopyFailed: a file copy or conversion into the output directory failed.
	CodeCopyFailed = "copy-failed"
)
