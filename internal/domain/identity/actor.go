package identity

type Role string

const (
	RoleMester   Role = "mester"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	return r == RoleMester || r == RoleCustomer
}

// Actor é a identidade já resolvida de quem chama o core.
type Actor struct {
	UserID uint
	Role   Role
}

func Mester(id uint) Actor {
	return Actor{UserID: id, Role: RoleMester}
}

func Customer(id uint) Actor {
	return Actor{UserID: id, Role: RoleCustomer}
}

func (a Actor) IsMester() bool {
	return a.Role == RoleMester
}
