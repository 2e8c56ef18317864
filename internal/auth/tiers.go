package auth

// ReadTiers returns tiers that can read data.
func ReadTiers() []Tier {
	return []Tier{TierClient, TierService}
}

// WriteTiers returns tiers that can modify data.
func WriteTiers() []Tier {
	return []Tier{TierService}
}
