package event

// Publisher 回调确认后的事件出口，下游（发货、对账）各自消费
type Publisher interface {
	Publish(topic string, msg any) error
}
