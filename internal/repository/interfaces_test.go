package repository

import (
	domainrepo "PulseBoard/internal/domain/repository"
)

// Compile-time checks that each repository satisfies its domain interface.
var (
	_ domainrepo.StateStore     = (*StateRepository)(nil)
	_ domainrepo.AlertStore     = (*AlertRepository)(nil)
	_ domainrepo.SetupStore     = (*SetupRepository)(nil)
	_ domainrepo.SettingsStore  = (*SettingsRepository)(nil)
	_ domainrepo.AlertPublisher = (*KafkaAlertPublisher)(nil)
)
