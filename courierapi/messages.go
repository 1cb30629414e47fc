package courierapi

import "fmt"

// Error messages returned by the service in the "message" property of an error body.
const (
	MessageLoginInUse             = "Этот логин уже используется. Попробуйте другой."
	MessageNotEnoughDataToCreate  = "Недостаточно данных для создания учетной записи"
	MessageNotEnoughDataToLogin   = "Недостаточно данных для входа"
	MessageAccountNotFound        = "Учетная запись не найдена"
	MessageNotEnoughDataToDelete  = "Недостаточно данных для удаления курьера"
	MessageNoCourierWithID        = "Курьера с таким id нет."
	messageCourierNotFoundPattern = "Курьер с идентификатором %s не найден"
)

// CourierNotFoundMessage is the message for an order list query with an unknown courier id.
func CourierNotFoundMessage(courierID string) string {
	return fmt.Sprintf(messageCourierNotFoundPattern, courierID)
}
