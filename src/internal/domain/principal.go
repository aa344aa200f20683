package domain

// PrincipalKind separates customer sessions from staff sessions. It is carried
// inside the signed token so a token minted for one kind is refused by routes
// that expect the other.
type PrincipalKind string

const (
	PrincipalCustomer PrincipalKind = "customer"
	PrincipalEmployee PrincipalKind = "employee"
)

func (k PrincipalKind) Valid() bool {
	return k == PrincipalCustomer || k == PrincipalEmployee
}

type Principal struct {
	Kind      PrincipalKind
	SubjectID string
}
