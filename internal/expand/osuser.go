package expand

import "os/user"

// OSUserDatabase implements UserDatabase by consulting the operating
// system's user database via os/user, the way fish's expand_home_directory
// falls through to getpwnam for a named user.
type OSUserDatabase struct{}

// Lookup resolves username's home directory through os/user.
func (OSUserDatabase) Lookup(username string) (homeDir string, ok bool) {
	u, err := user.Lookup(username)
	if err != nil {
		return "", false
	}
	return u.HomeDir, true
}
