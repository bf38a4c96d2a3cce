package entity

import "time"

// NotificationKind tipo de notificación.
type NotificationKind string

const (
	NotificationLowStock NotificationKind = "LOW_STOCK"
	NotificationSuccess  NotificationKind = "SUCCESS"
	NotificationError    NotificationKind = "ERROR"
)

// Notification aviso para el usuario. Las derivadas (stock bajo, préstamos
// vencidos) son efímeras: cada escaneo las regenera desde el estado actual en
// lugar de mantenerlas incrementalmente. Las disparadas por el usuario
// (venta registrada, item guardado) son aditivas y no participan del escaneo.
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
	Read      bool             `json:"read"`
}
