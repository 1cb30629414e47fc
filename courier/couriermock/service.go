// Package couriermock is an in-memory imitation of the courier service's endpoints, used to
// test the contract test harness itself. It follows the observed behavior of the real service
// closely enough for every scenario in couriertests to pass against it, and lets a test
// replace any endpoint with its own handler to simulate failures.
package couriermock

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"

	"github.com/courier-qa/courier-contract-tests/courierapi"

	"github.com/go-chi/chi/v5"
)

// RecordedRequest is a request that the Service received.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

type courierRecord struct {
	id        int
	login     string
	password  string
	firstName string
}

type orderRecord struct {
	Track        int      `json:"track"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Address      string   `json:"address"`
	MetroStation string   `json:"metroStation"`
	Phone        string   `json:"phone"`
	RentTime     int      `json:"rentTime"`
	DeliveryDate string   `json:"deliveryDate"`
	Comment      string   `json:"comment"`
	Color        []string `json:"color"`
}

// Service is an http.Handler for the courier and order endpoints. Its zero value is not
// usable; call New.
type Service struct {
	couriers  map[string]*courierRecord
	lastID    int
	lastTrack int
	orders    []orderRecord
	overrides map[string]http.Handler
	requests  []RecordedRequest
	router    chi.Router
	lock      sync.Mutex
}

// New creates a Service with no couriers and a few existing orders, some of them near
// station "110".
func New() *Service {
	s := &Service{
		couriers:  make(map[string]*courierRecord),
		overrides: make(map[string]http.Handler),
		lastID:    1000,
		lastTrack: 500000,
	}
	s.router = chi.NewRouter()
	s.routes(s.router)
	for i, station := range []string{"110", "4", "110", "7"} {
		s.lastTrack++
		s.orders = append(s.orders, orderRecord{
			Track:        s.lastTrack,
			FirstName:    "Order" + strconv.Itoa(i+1),
			MetroStation: station,
			RentTime:     1,
			Color:        []string{},
		})
	}
	return s
}

func (s *Service) routes(r chi.Router) {
	r.Post(courierapi.CourierPath, s.createCourier)
	r.Post(courierapi.CourierLoginPath, s.login)
	r.Delete(courierapi.CourierPath+"/", s.deleteCourier)
	r.Delete(courierapi.CourierPath+"/{id}", s.deleteCourier)
	r.Post(courierapi.OrdersPath, s.createOrder)
	r.Get(courierapi.OrdersPath, s.listOrders)
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
}

// Override makes every request with this method and path go to handler instead. The path is
// matched exactly, without the query string.
func (s *Service) Override(method, path string, handler http.Handler) {
	s.lock.Lock()
	s.overrides[method+" "+path] = handler
	s.lock.Unlock()
}

// Requests returns every request received so far, in order.
func (s *Service) Requests() []RecordedRequest {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// Logins returns the logins of all existing couriers, sorted.
func (s *Service) Logins() []string {
	s.lock.Lock()
	defer s.lock.Unlock()
	ret := make([]string, 0, len(s.couriers))
	for login := range s.couriers {
		ret = append(ret, login)
	}
	sort.Strings(ret)
	return ret
}

// AddCourier creates a courier directly and returns its id.
func (s *Service) AddCourier(params courierapi.CourierParams) int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.addCourier(params)
}

func (s *Service) addCourier(params courierapi.CourierParams) int {
	s.lastID++
	s.couriers[params.Login] = &courierRecord{
		id:        s.lastID,
		login:     params.Login,
		password:  params.Password,
		firstName: params.FirstName,
	}
	return s.lastID
}

func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))

	s.lock.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Body:   body,
	})
	override := s.overrides[r.Method+" "+r.URL.Path]
	s.lock.Unlock()

	if override != nil {
		override.ServeHTTP(w, r)
		return
	}
	s.router.ServeHTTP(w, r)
}

func readBody(r *http.Request) []byte {
	body, _ := io.ReadAll(r.Body)
	return body
}

func (s *Service) createCourier(w http.ResponseWriter, r *http.Request) {
	var params courierapi.CourierParams
	if json.Unmarshal(readBody(r), &params) != nil || params.Login == "" || params.Password == "" {
		writeError(w, http.StatusBadRequest, courierapi.MessageNotEnoughDataToCreate)
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, exists := s.couriers[params.Login]; exists {
		writeError(w, http.StatusConflict, courierapi.MessageLoginInUse)
		return
	}
	s.addCourier(params)
	writeJSON(w, http.StatusCreated, courierapi.OKResponse{OK: true})
}

func (s *Service) login(w http.ResponseWriter, r *http.Request) {
	var params courierapi.LoginParams
	if json.Unmarshal(readBody(r), &params) != nil || params.Login == "" || params.Password == "" {
		writeError(w, http.StatusBadRequest, courierapi.MessageNotEnoughDataToLogin)
		return
	}
	s.lock.Lock()
	c, exists := s.couriers[params.Login]
	s.lock.Unlock()
	if !exists || c.password != params.Password {
		writeError(w, http.StatusNotFound, courierapi.MessageAccountNotFound)
		return
	}
	writeJSON(w, http.StatusOK, courierapi.LoginResponse{ID: c.id})
}

func (s *Service) deleteCourier(w http.ResponseWriter, r *http.Request) {
	idText := chi.URLParam(r, "id")
	if idText == "" {
		writeError(w, http.StatusBadRequest, courierapi.MessageNotEnoughDataToDelete)
		return
	}
	id, _ := strconv.Atoi(idText)
	s.lock.Lock()
	defer s.lock.Unlock()
	for login, c := range s.couriers {
		if c.id == id {
			delete(s.couriers, login)
			writeJSON(w, http.StatusOK, courierapi.OKResponse{OK: true})
			return
		}
	}
	writeError(w, http.StatusNotFound, courierapi.MessageNoCourierWithID)
}

func (s *Service) createOrder(w http.ResponseWriter, r *http.Request) {
	var params courierapi.OrderParams
	if err := json.Unmarshal(readBody(r), &params); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.lastTrack++
	s.orders = append(s.orders, orderRecord{
		Track:        s.lastTrack,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Address:      params.Address,
		MetroStation: strconv.Itoa(params.MetroStation),
		Phone:        params.Phone,
		RentTime:     params.RentTime,
		DeliveryDate: params.DeliveryDate,
		Comment:      params.Comment,
		Color:        append([]string{}, params.Color...),
	})
	writeJSON(w, http.StatusCreated, courierapi.OrderCreated{Track: s.lastTrack})
}

func (s *Service) listOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	s.lock.Lock()
	defer s.lock.Unlock()

	if courierID := query.Get("courierId"); courierID != "" {
		found := false
		for _, c := range s.couriers {
			if strconv.Itoa(c.id) == courierID {
				found = true
			}
		}
		if !found {
			writeError(w, http.StatusNotFound, courierapi.CourierNotFoundMessage(courierID))
			return
		}
		// couriers created here never accept orders
		writeOrderPage(w, nil, 0, 30)
		return
	}

	matching := s.orders
	if stations := query.Get("nearestStation"); stations != "" {
		var wanted []string
		if err := json.Unmarshal([]byte(stations), &wanted); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		matching = nil
		for _, o := range s.orders {
			for _, station := range wanted {
				if o.MetroStation == station {
					matching = append(matching, o)
					break
				}
			}
		}
	}

	limit, page := 30, 0
	if n, err := strconv.Atoi(query.Get("limit")); err == nil && n > 0 {
		limit = n
	}
	if n, err := strconv.Atoi(query.Get("page")); err == nil && n >= 0 {
		page = n
	}
	start := page * limit
	if start > len(matching) {
		start = len(matching)
	}
	end := start + limit
	if end > len(matching) {
		end = len(matching)
	}
	writeOrderPage(w, matching[start:end], page, limit)
}

func writeOrderPage(w http.ResponseWriter, orders []orderRecord, page, limit int) {
	if orders == nil {
		orders = []orderRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"pageInfo": map[string]int{
			"page":  page,
			"total": len(orders),
			"limit": limit,
		},
		"availableStations": []interface{}{},
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, courierapi.ErrorResponse{Code: status, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	data, _ := json.Marshal(value)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
