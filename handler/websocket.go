package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"resto_manager/config"
	"resto_manager/database"
	"resto_manager/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var redisClient = redis.NewClient(&redis.Options{Addr: config.ConfigDefault("REDIS_ADDR", "localhost:6379")})

// Publish envía un evento al canal del tenant. Best-effort y fuera de la
// transacción: si Redis no responde solo se registra en el log, la mutación
// ya quedó confirmada. Los clientes reconcilian re-consultando la orden.
func Publish(orgID uint, event string, payload any) {
	body, err := json.Marshal(map[string]any{
		"event": event,
		"data":  payload,
	})
	if err != nil {
		log.Printf("Error serializando evento %s: %v", event, err)
		return
	}

	channel := fmt.Sprintf("org:%d", orgID)
	if err := redisClient.Publish(context.Background(), channel, body).Err(); err != nil {
		log.Printf("Broadcast perdido en %s (%s): %v", channel, event, err)
	}
}

// FetchActiveOrders carga las órdenes no terminales del tenant, el snapshot
// inicial que recibe todo cliente al conectarse.
func FetchActiveOrders(orgID uint) ([]model.Order, error) {
	var orders []model.Order
	err := database.DB.
		Preload("Items").
		Preload("Items.MenuItem").
		Preload("Waiter").
		Where("organization_id = ? AND status NOT IN ?", orgID,
			[]string{model.OrderPagado, model.OrderCancelado}).
		Order("created_at asc").
		Find(&orders).Error
	return orders, err
}

// WebSocketConnection maneja la conexión WS de un cliente (cocina, mesero,
// caja o cliente en mesa) suscrito al canal de su organización. Cada
// conexión lleva su propia suscripción Redis.
func WebSocketConnection(c *websocket.Conn) {
	orgIdStr := c.Params("orgId")
	id64, _ := strconv.ParseUint(orgIdStr, 10, 64)
	orgID := uint(id64)

	defer c.Close()

	// Snapshot inicial: el broadcast es una optimización, no la fuente de
	// verdad, así que el cliente arranca desde el estado real.
	orders, err := FetchActiveOrders(orgID)
	if err != nil {
		log.Printf("Error cargando snapshot para org %d: %v", orgID, err)
	} else if err := c.WriteJSON(map[string]any{"event": "snapshot", "data": orders}); err != nil {
		return
	}

	pubsub := redisClient.Subscribe(
		context.Background(),
		fmt.Sprintf("org:%d", orgID),
	)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		if err := c.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
			break
		}
	}
}
