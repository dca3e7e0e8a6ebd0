package models

// All returns every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&Permission{},
		&Role{},
		&School{},
		&User{},
		&UserToken{},
		&Student{},
		&Provider{},
		&Document{},
		&Contract{},
		&Contact{},
		&ProviderDocument{},
		&ProviderContract{},
		&ProviderContact{},
		&Therapist{},
		&TherapyService{},
		&Report{},
		&Invoice{},
		&ActivityLog{},
	}
}
