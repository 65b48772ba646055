package domain

// TypesConflict decides whether two booking types are mutually exclusive
// in time. The relation is symmetric.
//
//   - availability never conflicts with anything, including itself:
//     declared open time is an invitation, not an occupation
//   - appointment and blocked conflict with each other and with themselves
//   - custom never conflicts via this policy alone; a custom booking only
//     participates in overlap checking when the no-overlap rule's appliesTo
//     set explicitly includes it
func TypesConflict(a, b BookingType) bool {
	if a == TypeAvailability || b == TypeAvailability {
		return false
	}
	if a == TypeCustom || b == TypeCustom {
		return false
	}

	occupiesA := a == TypeAppointment || a == TypeBlocked
	occupiesB := b == TypeAppointment || b == TypeBlocked

	return occupiesA && occupiesB
}

// TypeInSet проверяет вхождение типа в набор appliesTo
func TypeInSet(t BookingType, set []BookingType) bool {
	for _, s := range set {
		if s == t {
			return true
		}
	}
	return false
}
