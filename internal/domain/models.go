package domain

// ModelSpec describes one vision model available for description generation,
// keyed internally by alias. Prices are USD per 1M tokens.
type ModelSpec struct {
	Alias         string  `json:"alias"`
	ModelID       string  `json:"model_id"`
	InputUSDPerM  float64 `json:"input_usd_per_m"`
	OutputUSDPerM float64 `json:"output_usd_per_m"`
}

// Model aliases exposed to callers. The concrete model ids stay internal to
// the catalog so the caller surface never leaks provider naming.
const (
	ModelSimple   = "simple"
	ModelMedium   = "medium"
	ModelAdvanced = "advanced"
)

// EmbeddingModelID is the single embedding model the index is built around.
// Its output dimensionality is fixed; the collection is created to match.
const (
	EmbeddingModelID       = "text-embedding-3-small"
	EmbeddingDimensions    = 1536
	EmbeddingUSDPerMTokens = 0.13
)

// modelCatalog maps aliases to vision models with pricing.
var modelCatalog = map[string]ModelSpec{
	ModelSimple:   {Alias: ModelSimple, ModelID: "gpt-4o-mini", InputUSDPerM: 0.15, OutputUSDPerM: 0.60},
	ModelMedium:   {Alias: ModelMedium, ModelID: "gpt-4o", InputUSDPerM: 5.00, OutputUSDPerM: 15.00},
	ModelAdvanced: {Alias: ModelAdvanced, ModelID: "gpt-4-turbo", InputUSDPerM: 10.00, OutputUSDPerM: 30.00},
}

// ResolveModel maps an alias to its catalog entry. Unknown aliases fall back
// to the simple model.
func ResolveModel(alias string) ModelSpec {
	if spec, ok := modelCatalog[alias]; ok {
		return spec
	}
	return modelCatalog[ModelSimple]
}

// ModelAliases returns the known aliases in a stable order.
func ModelAliases() []string {
	return []string{ModelSimple, ModelMedium, ModelAdvanced}
}
