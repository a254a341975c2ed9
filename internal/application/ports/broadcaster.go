package ports

// Nombres de eventos de tiempo real que consumen los dashboards.
const (
	EventWorkOrderCreated = "workorder_created"
	EventWorkOrderUpdated = "workorder_updated"
)

// Broadcaster puerto de publicación de eventos hacia los suscriptores
// conectados (dashboards, reportes). Fire-and-forget: una emisión nunca
// bloquea ni hace fallar la mutación que la originó, y debe dispararse
// aunque la conexión del caller original ya se haya caído. Sin cola de
// replay: un suscriptor que se conecta después del emit se lo pierde y
// debe refrescar por su cuenta.
type Broadcaster interface {
	Broadcast(event string, payload any)
}
