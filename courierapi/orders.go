package courierapi

import (
	"net/url"
	"strconv"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Scooter colors that an order can ask for.
const (
	ColorBlack = "BLACK"
	ColorGrey  = "GREY"
)

// OrderParams is the body of a create-order request.
type OrderParams struct {
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Address      string   `json:"address"`
	MetroStation int      `json:"metroStation"`
	Phone        string   `json:"phone"`
	RentTime     int      `json:"rentTime"`
	DeliveryDate string   `json:"deliveryDate"`
	Comment      string   `json:"comment"`
	Color        []string `json:"color"`
}

// NewOrder returns a typical order asking for the given colors. An empty or nil list of
// colors is sent as an empty JSON array, meaning no preference.
func NewOrder(colors []string) OrderParams {
	color := make([]string, 0, len(colors))
	color = append(color, colors...)
	return OrderParams{
		FirstName:    "Simona",
		LastName:     "Krikun",
		Address:      "Moscow, 142 apt.",
		MetroStation: 4,
		Phone:        "+7 800 355 35 35",
		RentTime:     5,
		DeliveryDate: "2020-06-06",
		Comment:      "Thanks",
		Color:        color,
	}
}

// OrderCreated is the body of a successful create-order request.
type OrderCreated struct {
	Track int `json:"track"`
}

// OrderListQuery holds the query parameters of an order list request. Parameters that are not
// defined are left out of the query string.
type OrderListQuery struct {
	CourierID      ldvalue.OptionalString
	Limit          ldvalue.OptionalInt
	Page           ldvalue.OptionalInt
	NearestStation []string
}

// Values encodes the query. NearestStation is sent as a JSON array of station ids, which is
// the format the service expects.
func (q OrderListQuery) Values() url.Values {
	values := url.Values{}
	if q.CourierID.IsDefined() {
		values.Set("courierId", q.CourierID.StringValue())
	}
	if q.Limit.IsDefined() {
		values.Set("limit", strconv.Itoa(q.Limit.IntValue()))
	}
	if q.Page.IsDefined() {
		values.Set("page", strconv.Itoa(q.Page.IntValue()))
	}
	if len(q.NearestStation) > 0 {
		stations := ldvalue.ArrayBuildWithCapacity(len(q.NearestStation))
		for _, s := range q.NearestStation {
			stations.Add(ldvalue.String(s))
		}
		values.Set("nearestStation", stations.Build().JSONString())
	}
	return values
}

// Page returns a query for one page of the order list.
func Page(limit, page int) OrderListQuery {
	return OrderListQuery{Limit: ldvalue.NewOptionalInt(limit), Page: ldvalue.NewOptionalInt(page)}
}
