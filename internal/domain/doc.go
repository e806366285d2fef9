// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/task, domain/project);
// role-based access rules live in domain/authz and update application rules
// in domain/lifecycle. This root package holds sentinel errors, validation
// types, and the Actor/User principal types shared across all entities.
package domain
