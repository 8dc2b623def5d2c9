package orders

const (
	TopicOrderCreated   = "order.created"
	TopicOrderPaid      = "order.paid"
	TopicOrderDelivered = "order.delivered"
)

// Topics lists every order topic, for consumers that follow the whole lifecycle.
var Topics = []string{TopicOrderCreated, TopicOrderPaid, TopicOrderDelivered}

// Partition key = order_id so one order's events stay in order.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
