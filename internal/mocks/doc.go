// Package mocks provides shared test doubles for stores and services.
//
// Two styles are used. Stores and services have testify mocks
// (TestifyMock*Store, Mock*Service) whose expectations are set with On.
// Collaborators that tests usually stub with a single behaviour, such as
// MockJWTService and MockPasswordHasher, use function fields with static
// defaults:
//
//	jwtMock := &mocks.MockJWTService{
//	    GenerateTokenFn: func(ctx context.Context, id uuid.UUID, role domain.Role) (string, error) {
//	        return "mocked-token", nil
//	    },
//	}
//
// MockUserStore is an in-memory UserStore for flows that need state
// across calls (register then login).
//
// Store mocks return themselves from WithTx, so the same expectations
// apply inside and outside a transaction.
package mocks
