// Package app provides the Application Composition Layer for the tracker.
//
// # Architecture Role
//
// The app package composes storage, the ownership guard and the domain
// services into a running application. It holds no business rules of its own.
//
// # Package Structure
//
//	internal/app/
//	├── application.go      # Application struct, wiring, and lifecycle
//	├── auth/               # Token service and password hashing
//	├── domain/             # Domain models (pure data structures)
//	│   ├── identity/       # Registered users
//	│   ├── project/        # Projects
//	│   └── task/           # Tasks, priorities, statuses, breakdown buckets
//	├── guard/              # Owner-bound views over the stores
//	├── storage/            # Store interfaces and implementations
//	│   ├── interfaces.go   # IdentityStore, ProjectStore, TaskStore
//	│   ├── memory/         # In-memory implementation for tests and dev
//	│   ├── sqlstore/       # Postgres and SQLite implementation
//	│   └── storagetest/    # Behavioural suite every store must pass
//	├── services/           # accounts, projects, tasks, stats
//	├── maintenance/        # Scheduled orphan task sweep
//	├── httpapi/            # HTTP routes and handlers
//	├── runtime/            # Process wiring: config, stores, HTTP server
//	├── system/             # Lifecycle manager for background services
//	└── metrics/            # Prometheus collectors
//
// # Request Flow
//
//	request ─► auth gate ─► validation ─► guard-scoped service ─► stats
//	                                                        │
//	                                      error mapper ◄────┘ (on failure)
//
// # Dependency Direction
//
//	cmd/tracker/
//	      │
//	      ▼
//	internal/app/runtime
//	      │
//	      ├──► internal/app/httpapi ──► internal/validation
//	      │
//	      └──► internal/app (composition)
//	                  │
//	                  ├──► services ──► guard ──► storage
//	                  │
//	                  └──► maintenance ──► storage
//
// # Example: Adding a New Resource
//
//  1. Create the model in internal/app/domain/<name>/
//  2. Add an owner-scoped interface to internal/app/storage/interfaces.go
//  3. Implement it in storage/memory and storage/sqlstore, and extend storagetest
//  4. Expose it through guard.Scope
//  5. Add a service in internal/app/services/<name>/ and wire it here
//  6. Add a schema in internal/validation and handlers in internal/app/httpapi
package app
