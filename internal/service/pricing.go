package service

import (
	"context"
	"math"

	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/domain"
)

// Token heuristics per photo: the instruction plus image metadata on input,
// the generated description on output, and the description again when it is
// embedded. The image-processing surcharge depends on pixel count and has
// no flat price, so it is deliberately excluded.
const (
	estInputTokensPerPhoto     = 200
	estOutputTokensPerPhoto    = 300
	estEmbeddingTokensPerPhoto = 50
)

// CostBreakdown itemizes an estimate in PLN.
type CostBreakdown struct {
	GenerationPLN float64 `json:"generation_pln"`
	EmbeddingPLN  float64 `json:"embedding_pln"`
	USDPLNRate    float64 `json:"usd_pln_rate"`
}

// CostEstimate is the total estimated processing cost with its breakdown.
type CostEstimate struct {
	TotalPLN  float64       `json:"total_pln"`
	Breakdown CostBreakdown `json:"breakdown"`
	Note      string        `json:"note"`
}

const costNote = "Estimate excludes the per-image processing surcharge, which depends on resolution. The actual cost may be higher."

// EstimateCost computes the expected cost of describing and embedding
// numPhotos photos with the given model alias. Pure function of the static
// price table and the supplied USD to PLN rate; unknown aliases fall back
// to the simple model like everywhere else.
func EstimateCost(ctx context.Context, numPhotos int, modelAlias string, rate RateProvider) CostEstimate {
	model := domain.ResolveModel(modelAlias)
	usdPLN := 4.0
	if rate != nil {
		usdPLN = rate.USDToPLN(ctx)
	}

	n := float64(numPhotos)
	generationUSD := n*estInputTokensPerPhoto/1e6*model.InputUSDPerM +
		n*estOutputTokensPerPhoto/1e6*model.OutputUSDPerM
	embeddingUSD := n * estEmbeddingTokensPerPhoto / 1e6 * domain.EmbeddingUSDPerMTokens

	generationPLN := roundPLN(generationUSD * usdPLN)
	embeddingPLN := roundPLN(embeddingUSD * usdPLN)

	return CostEstimate{
		TotalPLN: roundPLN((generationUSD + embeddingUSD) * usdPLN),
		Breakdown: CostBreakdown{
			GenerationPLN: generationPLN,
			EmbeddingPLN:  embeddingPLN,
			USDPLNRate:    usdPLN,
		},
		Note: costNote,
	}
}

func roundPLN(v float64) float64 {
	return math.Round(v*100) / 100
}
