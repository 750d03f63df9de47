package auth

import (
	"fmt"
	"trivia-api/internal/logger"

	"github.com/casbin/casbin/v2"
)

// SeedDefaultPolicies ensures the baseline roles exist. Each policy is only
// added when missing, so it is safe to run on every start.
//
// Contributors may add questions; editors may also delete them.
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger) {
	log.Info("Seeding default authorization policies...")

	policies := [][]string{
		{"contributor", ScopeCreateQuestions},
		{"editor", ScopeDeleteQuestions},
	}
	for _, p := range policies {
		if has, _ := e.HasPolicy(p); !has {
			if _, err := e.AddPolicy(p); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			}
		}
	}

	if has, _ := e.HasRoleForUser("editor", "contributor"); !has {
		if _, err := e.AddRoleForUser("editor", "contributor"); err != nil {
			log.Error(err, "Failed to add role 'editor' -> 'contributor'")
		}
	}
	log.Info("Policy seeding complete.")
}
