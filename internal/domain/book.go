package domain

// Book is a published listing. Code is the immutable primary key; MessageID is
// the channel message reference required to retract the post later.
type Book struct {
	Code      string  `db:"code"`
	UserID    int64   `db:"user_id"`
	MessageID int64   `db:"message_id"`
	Name      string  `db:"name"`
	Year      string  `db:"year"`
	Subject   string  `db:"subject"`
	Condition string  `db:"condition"`
	ISBN      string  `db:"isbn"`
	Price     *string `db:"price"`
	Photo     *string `db:"photo"`
}

// Draft accumulates listing fields across conversation steps. It lives only in
// the session manager and is persisted atomically at confirmation.
type Draft struct {
	Code      string
	Name      string
	Year      string
	Subject   string
	Condition string
	ISBN      string
	Price     *string
	Photo     *string

	// CustomSubject marks that the "other" subject sentinel was chosen and the
	// next text input is the free-form subject.
	CustomSubject bool
}

// Book converts a completed draft into a listing owned by userID.
func (d *Draft) Book(userID, messageID int64) Book {
	return Book{
		Code:      d.Code,
		UserID:    userID,
		MessageID: messageID,
		Name:      d.Name,
		Year:      d.Year,
		Subject:   d.Subject,
		Condition: d.Condition,
		ISBN:      d.ISBN,
		Price:     d.Price,
		Photo:     d.Photo,
	}
}
