package qr

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// Payload - содержимое QR-кода проездного.
// Кодек трактуется как непрозрачный round-trip: что закодировали,
// то и получаем обратно при сканировании.
type Payload struct {
	PassID    string    `json:"passId"`
	UserID    string    `json:"userId"`
	ValidFrom time.Time `json:"validFrom"`
	ValidTo   time.Time `json:"validTo"`
}

var ErrInvalidPayload = errors.New("invalid qr payload")

// EncodePayload сериализует полезную нагрузку в строку для QR-кода
func EncodePayload(p Payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodePayload разбирает отсканированную строку обратно в Payload
func DecodePayload(data string) (Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return Payload{}, ErrInvalidPayload
	}
	if p.PassID == "" || p.UserID == "" {
		return Payload{}, ErrInvalidPayload
	}
	return p, nil
}

// GenerateImage рендерит полезную нагрузку в PNG и возвращает data-URL,
// пригодный для показа в мобильном клиенте
func GenerateImage(p Payload) (string, error) {
	content, err := EncodePayload(p)
	if err != nil {
		return "", err
	}

	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
