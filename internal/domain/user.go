package domain

// User is the resolved identity of a pull-request author or requested
// reviewer. Known is false when the profile could not be fetched or parsed;
// such identities render as the literal "None" instead of failing the report.
type User struct {
	Login string
	Name  string
	Known bool
}

// UnknownUser is the explicit fallback identity.
var UnknownUser = User{}

// DisplayName prefers the real name when present, then the login.
func (u User) DisplayName() string {
	if !u.Known {
		return "None"
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Login
}
