package usage

type Response struct {
	Used      uint64 `json:"used"`
	Limit     uint64 `json:"limit"`
	Available uint64 `json:"available"`
}
