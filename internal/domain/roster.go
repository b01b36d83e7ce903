package domain

import "github.com/google/uuid"

// roster is the attendee set shared by Trip and Event.
// Membership is decided by user ID, never by value equality.
type roster []User

func (r roster) contains(id uuid.UUID) bool {
	for _, u := range r {
		if u.ID == id {
			return true
		}
	}
	return false
}

func (r roster) add(u User) roster {
	if r.contains(u.ID) {
		return r
	}
	return append(r, u)
}

// remove returns a new roster so copies of the owner never share storage.
func (r roster) remove(id uuid.UUID) roster {
	out := make(roster, 0, len(r))
	for _, u := range r {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out
}

// clone returns a fresh non-nil slice so callers cannot mutate the roster.
func (r roster) clone() []User {
	out := make([]User, len(r))
	copy(out, r)
	return out
}

func newRoster(users []User) roster {
	var r roster
	for _, u := range users {
		r = r.add(u)
	}
	return r
}
