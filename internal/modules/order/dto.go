package order

type ItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

type PlaceOrderRequest struct {
	BakeryID        int64         `json:"bakery_id" binding:"required"`
	Items           []ItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress string        `json:"delivery_address" binding:"required"`
	Notes           string        `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed completed"`
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}
