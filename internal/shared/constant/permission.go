package constant

// Casbin policy objects.
const (
	PermIdentityMgmtUsers = "identity:mgmt:users"
	PermBlogMgmtTaxonomy  = "blog:mgmt:taxonomy"
)

// Casbin policy actions.
const (
	PermActCreate = "create"
	PermActRead   = "read"
	PermActUpdate = "update"
	PermActDelete = "delete"
)
