package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	RouteUsers     = RouteApiV1 + "/users"
	RouteUser      = RouteUsers + "/:user_id"
	RouteUserUsage = RouteUser + "/usage"

	RouteShares      = RouteApiV1 + "/shares"
	RouteShareRedeem = RouteShares + "/:token/redeem"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
