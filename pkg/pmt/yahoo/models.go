package yahoo

// Stats carries the valuation fields the fundamentals package consumes.
// Every field is optional; Yahoo omits whatever an instrument lacks.
type Stats struct {
	PEG         *float64
	TrailingEPS *float64
	ForwardEPS  *float64
	TrailingPE  *float64
	ForwardPE   *float64
	Price       *float64
}

// rawValue is Yahoo's {"raw": n, "fmt": "..."} number wrapper.
type rawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

type quoteSummaryResult struct {
	DefaultKeyStatistics *struct {
		PegRatio    rawValue `json:"pegRatio"`
		TrailingEps rawValue `json:"trailingEps"`
		ForwardEps  rawValue `json:"forwardEps"`
		ForwardPE   rawValue `json:"forwardPE"`
	} `json:"defaultKeyStatistics"`
	SummaryDetail *struct {
		TrailingPE        rawValue `json:"trailingPE"`
		ForwardPE         rawValue `json:"forwardPE"`
		TrailingPegRatio  rawValue `json:"trailingPegRatio"`
		RegularMarketOpen rawValue `json:"regularMarketOpen"`
	} `json:"summaryDetail"`
	FinancialData *struct {
		CurrentPrice rawValue `json:"currentPrice"`
	} `json:"financialData"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *apiError            `json:"error"`
	} `json:"quoteSummary"`
}

// stats flattens the module soup into Stats. The published PEG prefers the
// keyStatistics value and falls back to the trailing-twelve-month variant.
func (r quoteSummaryResult) stats() Stats {
	var s Stats
	if ks := r.DefaultKeyStatistics; ks != nil {
		s.PEG = ks.PegRatio.Raw
		s.TrailingEPS = ks.TrailingEps.Raw
		s.ForwardEPS = ks.ForwardEps.Raw
		s.ForwardPE = ks.ForwardPE.Raw
	}
	if sd := r.SummaryDetail; sd != nil {
		s.TrailingPE = sd.TrailingPE.Raw
		if s.ForwardPE == nil {
			s.ForwardPE = sd.ForwardPE.Raw
		}
		if s.PEG == nil {
			s.PEG = sd.TrailingPegRatio.Raw
		}
	}
	if fd := r.FinancialData; fd != nil {
		s.Price = fd.CurrentPrice.Raw
	}
	return s
}
