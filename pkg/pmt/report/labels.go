package report

import (
	"fmt"
	"strings"
)

// Model is the cosmetic "AI model" label. Its only effect is which
// description sentence appears in the report header; it carries no
// computational weight and must not be wired into scoring.
type Model int

const (
	ModelMachineLearning Model = iota
	ModelLSTM
	ModelAutonomous
	ModelReinforcement
	ModelSentiment
)

var modelNames = map[Model]string{
	ModelMachineLearning: "Machine Learning",
	ModelLSTM:            "LSTM",
	ModelAutonomous:      "Autonomous AI",
	ModelReinforcement:   "Reinforcement Learning",
	ModelSentiment:       "Sentiment Analysis",
}

var modelDescriptions = map[Model]string{
	ModelMachineLearning: "gradient-boosted feature pipeline re-fit on the latest session",
	ModelLSTM:            "sequence model over the trailing price window",
	ModelAutonomous:      "self-evolving ensemble with overfitting self-check complete",
	ModelReinforcement:   "policy iteration against the simulated order book",
	ModelSentiment:       "headline polarity blended with price momentum",
}

func (m Model) String() string      { return modelNames[m] }
func (m Model) Description() string { return modelDescriptions[m] }

// ParseModel accepts a model label, case-insensitively.
func ParseModel(s string) (Model, error) {
	for m, name := range modelNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown model %q (choose from %s)", s, strings.Join(ModelNames(), ", "))
}

// ModelNames lists the selectable labels in declaration order.
func ModelNames() []string {
	out := make([]string, 0, len(modelNames))
	for m := ModelMachineLearning; m <= ModelSentiment; m++ {
		out = append(out, modelNames[m])
	}
	return out
}

// Algorithm is the cosmetic "strategy algorithm" label, same contract as
// Model.
type Algorithm int

const (
	AlgoQuant Algorithm = iota
	AlgoKaiScore
	AlgoHolly
	AlgoPortfolioOpt
)

var algoNames = map[Algorithm]string{
	AlgoQuant:        "Quant Analysis",
	AlgoKaiScore:     "Kai Score",
	AlgoHolly:        "Holly AI",
	AlgoPortfolioOpt: "Portfolio Optimizer",
}

var algoDescriptions = map[Algorithm]string{
	AlgoQuant:        "factor screen over momentum and valuation inputs",
	AlgoKaiScore:     "composite point score per instrument",
	AlgoHolly:        "intraday pattern ensemble",
	AlgoPortfolioOpt: "weight allocation against the selected universe",
}

func (a Algorithm) String() string      { return algoNames[a] }
func (a Algorithm) Description() string { return algoDescriptions[a] }

// ParseAlgorithm accepts an algorithm label, case-insensitively.
func ParseAlgorithm(s string) (Algorithm, error) {
	for a, name := range algoNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown algorithm %q (choose from %s)", s, strings.Join(AlgorithmNames(), ", "))
}

// AlgorithmNames lists the selectable labels in declaration order.
func AlgorithmNames() []string {
	out := make([]string, 0, len(algoNames))
	for a := AlgoQuant; a <= AlgoPortfolioOpt; a++ {
		out = append(out, algoNames[a])
	}
	return out
}
