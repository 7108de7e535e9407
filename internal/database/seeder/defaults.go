package seeder

import "jobboard/internal/config"

// Defaults returns the seeders run by the seed command. Demo data is only
// added on request.
func Defaults(admin config.AdminConfig, demo bool) []Seeder {
	out := []Seeder{AdminSeeder{Email: admin.Email, Password: admin.Password}}
	if demo {
		out = append(out, DemoJobsSeeder{})
	}
	return out
}
