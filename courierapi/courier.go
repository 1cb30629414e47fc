package courierapi

// CourierParams is the body of a create-courier request. Login and Password are always sent,
// even when empty, since an empty value is one of the cases the service must reject.
type CourierParams struct {
	Login     string `json:"login"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
}

// Credentials returns the login request for the same courier.
func (p CourierParams) Credentials() LoginParams {
	return LoginParams{Login: p.Login, Password: p.Password}
}

// LoginParams is the body of a login request.
type LoginParams struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// PasswordOnly is a login request body with no login property at all.
type PasswordOnly struct {
	Password string `json:"password"`
}

// OKResponse is the body of a successful create or delete.
type OKResponse struct {
	OK bool `json:"ok"`
}

// ErrorResponse is the body of any 4xx response.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// LoginResponse is the body of a successful login. The service returns the id as a number.
type LoginResponse struct {
	ID int `json:"id"`
}
