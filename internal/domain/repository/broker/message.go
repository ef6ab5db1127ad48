package broker

// Message is one scan job taken off the queue. Body carries the post id in
// decimal form.
type Message interface {
	Body() string
	Ack() error
	Nack() error
}
