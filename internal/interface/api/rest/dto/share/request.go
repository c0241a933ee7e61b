package share

type RedeemRequest struct {
	Password string `json:"password"`
}
