package resourcepack

// Provider is one bitmap glyph provider. Field order is the document's key order.
type Provider struct {
	Type   string   `json:"type"`
	File   string   `json:"file"`
	Ascent int      `json:"ascent"`
	Height int      `json:"height"`
	Chars  []string `json:"chars"`
}

// Descriptor is the font descriptor document (default.json).
type Descriptor struct {
	Providers []Provider `json:"providers"`
}

// Manifest is pack.mcmeta.
type Manifest struct {
	Pack ManifestPack `json:"pack"`
}

// ManifestPack is the "pack" object of pack.mcmeta.
type ManifestPack struct {
	PackFormat  int    `json:"pack_format"`
	Description string `json:"description"`
}
