package courierapi

import "net/url"

const (
	CourierPath      = "/courier"
	CourierLoginPath = "/courier/login"
	OrdersPath       = "/orders"
)

// CourierByIDPath is the path used to delete a courier.
func CourierByIDPath(id string) string {
	return CourierPath + "/" + url.PathEscape(id)
}
