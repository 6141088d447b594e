package models

// Counter is a named atomic sequence. The order-number sequence lives
// here so concurrent checkouts draw distinct numbers instead of racing a
// count(*)+1.
type Counter struct {
	Name  string `gorm:"column:name;type:text;primaryKey"`
	Value int64  `gorm:"column:value;not null;default:0"`
}

// CounterOrderNumber is the sequence backing Order.OrderNumber.
const CounterOrderNumber = "order_number"
