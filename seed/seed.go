// Package seed loads a deterministic sample dataset for demos and local
// development.
package seed

import (
	"errors"
	"fmt"
	"log"
	"time"

	"salestrack/models"
	"salestrack/store"
)

type sampleUser struct {
	username string
	password string
}

type sampleSale struct {
	owner         string
	customerName  string
	item          string
	unitPrice     float64
	quantity      int
	status        string
	paymentStatus string
	daysAgo       int
	contactNumber string
}

var sampleUsers = []sampleUser{
	{"alice", "alice123"},
	{"bob", "bob456"},
	{"charlie", "charlie789"},
	{"diana", "diana012"},
	{"edward", "edward345"},
}

var sampleSales = []sampleSale{
	{"alice", "Michael Johnson", "Monitor", 299.99, 1, models.StatusCompleted, models.PaymentPaid, 5, "9112233445"},
	{"alice", "Sarah Williams", "USB Cable", 12.99, 5, models.StatusCompleted, models.PaymentPaid, 7, "9334455667"},
	{"bob", "David Miller", "Tablet", 349.99, 2, models.StatusPending, models.PaymentUnpaid, 2, "9777777777"},
	{"charlie", "Jennifer Brown", "Printer", 189.99, 1, models.StatusCompleted, models.PaymentPaid, 4, "9000000001"},
	{"diana", "Robert Garcia", "Gaming Mouse", 59.99, 1, models.StatusCompleted, models.PaymentPaid, 6, "9000000005"},
	{"edward", "Lisa Martinez", "Monitor Arm", 89.99, 1, models.StatusCompleted, models.PaymentPaid, 7, "9000000010"},
	{"alice", "Thomas Anderson", "Keyboard", 45.99, 1, models.StatusCompleted, models.PaymentPaid, 1, "9988776655"},
	{"bob", "Emily Davis", "Mouse", 25.50, 3, models.StatusPending, models.PaymentUnpaid, 3, "9123456780"},
	{"charlie", "Daniel Wilson", "Laptop", 850.00, 2, models.StatusCompleted, models.PaymentPaid, 2, "9876543210"},
	{"diana", "Patricia Taylor", "Webcam", 49.99, 1, models.StatusCompleted, models.PaymentPaid, 1, "9223344556"},
	{"edward", "Christopher Lee", "Headphones", 79.99, 2, models.StatusCompleted, models.PaymentPaid, 4, "9334455667"},
	{"alice", "Amanda Scott", "External SSD", 129.99, 1, models.StatusPending, models.PaymentUnpaid, 0, "9445566778"},
	{"bob", "Kevin White", "Power Bank", 39.99, 3, models.StatusCompleted, models.PaymentPaid, 1, "9556677889"},
}

// Apply registers the sample users and adds their sample sales. Already
// registered usernames are skipped so Apply is safe against a restored
// snapshot.
func Apply(users *store.UserRegistry, sales *store.SaleStore) error {
	for _, u := range sampleUsers {
		if err := users.Register(u.username, u.password); err != nil {
			if errors.Is(err, store.ErrUsernameTaken) {
				continue
			}
			return fmt.Errorf("seed user %s: %w", u.username, err)
		}
	}

	for _, s := range sampleSales {
		_, err := sales.Add(models.Sale{
			CustomerName:  s.customerName,
			Item:          s.item,
			UnitPrice:     s.unitPrice,
			Quantity:      s.quantity,
			Status:        s.status,
			PaymentStatus: s.paymentStatus,
			SaleDate:      time.Now().AddDate(0, 0, -s.daysAgo),
			ContactNumber: s.contactNumber,
			Owner:         s.owner,
		})
		if err != nil {
			return fmt.Errorf("seed sale for %s: %w", s.owner, err)
		}
	}

	log.Printf("📦 Seed: loaded %d sample users and %d sample sales", len(sampleUsers), len(sampleSales))
	return nil
}
