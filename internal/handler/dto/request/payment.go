package request

type ResolveUnfulfilledRequest struct {
	Action string `json:"action" binding:"required,oneof=refund reoffer"`
}
