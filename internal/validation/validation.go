// Package validation содержит функции валидации входных данных.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/pwrstore/storeclient/internal/model"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Польский номер: девять цифр, опциональный код страны и разделители.
	phoneRe = regexp.MustCompile(`^(\+48)?\d{3}[ -]?\d{3}[ -]?\d{3}$`)
)

// ValidEmail проверяет адрес электронной почты.
func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidPhone проверяет телефонный номер в польском формате.
func ValidPhone(phone string) bool {
	return phoneRe.MatchString(strings.TrimSpace(phone))
}

// ValidPassword проверяет минимальную длину пароля.
func ValidPassword(password string) bool {
	return len(password) >= 6
}

// ValidName проверяет имя или фамилию: от 2 до 50 символов без пробелов по краям.
func ValidName(name string) bool {
	trimmed := strings.TrimSpace(name)
	return len(trimmed) >= 2 && len(trimmed) <= 50 && trimmed == name
}

// ValidPrice проверяет цену товара: положительная, не более миллиона.
func ValidPrice(price float64) bool {
	return price > 0 && price <= 1_000_000
}

// ValidQuantity проверяет количество в позиции заказа.
func ValidQuantity(quantity int) bool {
	return quantity >= 1 && quantity <= 1000
}

// ValidateRegistration проверяет заявку на регистрацию покупателя.
// Возвращает первую найденную ошибку.
func ValidateRegistration(req model.RegisterCustomerRequest) error {
	if !ValidName(req.FirstName) {
		return errors.New("first name must be 2-50 characters")
	}
	if !ValidName(req.LastName) {
		return errors.New("last name must be 2-50 characters")
	}
	if !ValidEmail(req.Email) {
		return errors.New("invalid email address")
	}
	if !ValidPhone(req.PhoneNumber) {
		return errors.New("invalid phone number")
	}
	if !ValidPassword(req.Password) {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}

// ValidateOrder проверяет запрос на оформление заказа перед отправкой.
func ValidateOrder(req model.CreateOrderRequest) error {
	if req.PickupStoreID <= 0 {
		return errors.New("pickup store is not selected")
	}
	if len(req.Lines) == 0 {
		return errors.New("order has no lines")
	}
	for _, line := range req.Lines {
		if line.ProductID <= 0 {
			return fmt.Errorf("invalid product id %d", line.ProductID)
		}
		if !ValidQuantity(line.Quantity) {
			return fmt.Errorf("invalid quantity %d for product %d", line.Quantity, line.ProductID)
		}
	}
	return nil
}
