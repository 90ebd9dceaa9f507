package permission_test

import (
	"errors"
	"log/slog"
	"os"

	"github.com/frahmantamala/naming-registry/internal"
	"github.com/frahmantamala/naming-registry/internal/account"
	permissionDatamodel "github.com/frahmantamala/naming-registry/internal/core/datamodel/permission"
	"github.com/frahmantamala/naming-registry/internal/permission"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// MockRepository implements permission.RepositoryAPI for testing
type MockRepository struct {
	rows       []*permissionDatamodel.UserPermission
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

func (m *MockRepository) FindByPair(assignee, assigner string) ([]*permissionDatamodel.UserPermission, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var matched []*permissionDatamodel.UserPermission
	for _, row := range m.rows {
		if row.AssigneeExternalID == assignee && row.AssignerExternalID == assigner {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

func (m *MockRepository) Create(row *permissionDatamodel.UserPermission) error {
	if m.shouldFail {
		return m.failError
	}
	m.rows = append(m.rows, row)
	return nil
}

func (m *MockRepository) UpdatePermissions(assignee, assigner, encoded string) error {
	if m.shouldFail {
		return m.failError
	}
	for _, row := range m.rows {
		if row.AssigneeExternalID == assignee && row.AssignerExternalID == assigner {
			row.Permissions = encoded
		}
	}
	return nil
}

func (m *MockRepository) AddRow(assignee, assigner, encoded string) {
	m.rows = append(m.rows, &permissionDatamodel.UserPermission{
		AssigneeExternalID: assignee,
		AssignerExternalID: assigner,
		Permissions:        encoded,
	})
}

func (m *MockRepository) StoredEncoding(assignee, assigner string) string {
	for _, row := range m.rows {
		if row.AssigneeExternalID == assignee && row.AssignerExternalID == assigner {
			return row.Permissions
		}
	}
	return "<no row>"
}

// MockDirectory implements permission.AccountDirectory for testing
type MockDirectory struct {
	accounts map[string]*account.Account
}

func NewMockDirectory() *MockDirectory {
	return &MockDirectory{accounts: make(map[string]*account.Account)}
}

func (m *MockDirectory) GetByNetworkID(networkID string) (*account.Account, error) {
	return m.accounts[networkID], nil
}

func (m *MockDirectory) AddAccount(networkID, username string) {
	m.accounts[networkID] = &account.Account{
		NetworkID: networkID,
		Username:  username,
		Enabled:   true,
	}
}

var _ = Describe("Permission Service", func() {
	var (
		mockRepo *MockRepository
		mockDir  *MockDirectory
		service  *permission.Service
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		mockDir = NewMockDirectory()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = permission.NewService(mockRepo, mockDir, logger)

		mockDir.AddAccount("alice-id", "alice")
		mockDir.AddAccount("bob-id", "bob")
	})

	Describe("Grant", func() {
		Context("when the assigner has no account", func() {
			It("should refuse with NO_MANAGE_PERMISSION", func() {
				err := service.Grant("bob-id", "ghost-id", "docs", "write")
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeNoManagePermission))
			})
		})

		Context("when no relationship row exists", func() {
			It("should insert a row holding exactly the new grant", func() {
				err := service.Grant("bob-id", "alice-id", "docs", "write")
				Expect(err).NotTo(HaveOccurred())
				Expect(mockRepo.StoredEncoding("bob-id", "alice-id")).To(Equal("docs:write"))
			})
		})

		Context("when a relationship row exists", func() {
			BeforeEach(func() {
				mockRepo.AddRow("bob-id", "alice-id", "docs:write,wiki:read")
			})

			It("should add a new module's grant to the set", func() {
				err := service.Grant("bob-id", "alice-id", "mail", "admin")
				Expect(err).NotTo(HaveOccurred())
				Expect(mockRepo.StoredEncoding("bob-id", "alice-id")).
					To(Equal("docs:write,mail:admin,wiki:read"))
			})

			It("should replace the level for an already-granted module", func() {
				err := service.Grant("bob-id", "alice-id", "docs", "read")
				Expect(err).NotTo(HaveOccurred())
				Expect(mockRepo.StoredEncoding("bob-id", "alice-id")).
					To(Equal("docs:read,wiki:read"))
			})

			It("should keep one entry per module after granting twice", func() {
				Expect(service.Grant("bob-id", "alice-id", "docs", "write")).To(Succeed())
				Expect(service.Grant("bob-id", "alice-id", "docs", "read")).To(Succeed())

				set, err := service.GetForPair("bob-id", "alice-id")
				Expect(err).NotTo(HaveOccurred())
				level, ok := set.Level("docs")
				Expect(ok).To(BeTrue())
				Expect(level).To(Equal("read"))
			})
		})

		Context("when the unique-pair invariant is broken", func() {
			BeforeEach(func() {
				mockRepo.AddRow("bob-id", "alice-id", "docs:write")
				mockRepo.AddRow("bob-id", "alice-id", "wiki:read")
			})

			It("should surface DATA_INTEGRITY_VIOLATION instead of merging", func() {
				err := service.Grant("bob-id", "alice-id", "mail", "admin")
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeDataIntegrity))

				// neither row was touched
				Expect(mockRepo.rows[0].Permissions).To(Equal("docs:write"))
				Expect(mockRepo.rows[1].Permissions).To(Equal("wiki:read"))
			})
		})

		Context("when the store fails", func() {
			It("should propagate the error", func() {
				mockRepo.shouldFail = true
				mockRepo.failError = errors.New("connection reset")

				err := service.Grant("bob-id", "alice-id", "docs", "write")
				Expect(err).To(MatchError("connection reset"))
			})
		})
	})

	Describe("ClearModule", func() {
		Context("when the assigner has no account", func() {
			It("should refuse with NO_ACCOUNT", func() {
				_, err := service.ClearModule("docs", "bob-id", "ghost-id")
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeNoAccount))
			})
		})

		Context("when no relationship row exists", func() {
			It("should succeed without writing and still name the assignee", func() {
				username, err := service.ClearModule("docs", "bob-id", "alice-id")
				Expect(err).NotTo(HaveOccurred())
				Expect(username).To(Equal("bob"))
				Expect(mockRepo.StoredEncoding("bob-id", "alice-id")).To(Equal("<no row>"))
			})
		})

		Context("when a relationship row exists", func() {
			BeforeEach(func() {
				mockRepo.AddRow("bob-id", "alice-id", "docs:write,wiki:read")
			})

			It("should strip the module's entries and keep the rest", func() {
				username, err := service.ClearModule("docs", "bob-id", "alice-id")
				Expect(err).NotTo(HaveOccurred())
				Expect(username).To(Equal("bob"))
				Expect(mockRepo.StoredEncoding("bob-id", "alice-id")).To(Equal("wiki:read"))
			})

			It("should retain the row with an empty encoding when the set empties", func() {
				Expect(mustClear(service, "docs", "bob-id", "alice-id")).To(Equal("bob"))
				Expect(mustClear(service, "wiki", "bob-id", "alice-id")).To(Equal("bob"))
				Expect(mockRepo.StoredEncoding("bob-id", "alice-id")).To(Equal(""))

				set, err := service.GetForPair("bob-id", "alice-id")
				Expect(err).NotTo(HaveOccurred())
				Expect(set).NotTo(BeNil())
				Expect(set).To(BeEmpty())
			})

			It("should leave the set unchanged when the module has no grants", func() {
				username, err := service.ClearModule("mail", "bob-id", "alice-id")
				Expect(err).NotTo(HaveOccurred())
				Expect(username).To(Equal("bob"))
				Expect(mockRepo.StoredEncoding("bob-id", "alice-id")).To(Equal("docs:write,wiki:read"))
			})
		})
	})

	Describe("GetForPair", func() {
		It("should return nil when no relationship row exists", func() {
			set, err := service.GetForPair("bob-id", "alice-id")
			Expect(err).NotTo(HaveOccurred())
			Expect(set).To(BeNil())
		})

		It("should decode the stored set", func() {
			mockRepo.AddRow("bob-id", "alice-id", "docs:write")

			set, err := service.GetForPair("bob-id", "alice-id")
			Expect(err).NotTo(HaveOccurred())
			level, ok := set.Level("docs")
			Expect(ok).To(BeTrue())
			Expect(level).To(Equal("write"))
		})

		It("should surface malformed stored data", func() {
			mockRepo.AddRow("bob-id", "alice-id", "garbage")

			_, err := service.GetForPair("bob-id", "alice-id")
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeMalformedToken))
		})
	})
})

func mustClear(service *permission.Service, module, assignee, assigner string) string {
	username, err := service.ClearModule(module, assignee, assigner)
	Expect(err).NotTo(HaveOccurred())
	return username
}
