package validate

const (
	maxName  = 100
	maxEmail = 100
	maxPhone = 20
)

// Register is used when creating an account.
var Register = Schema{
	{Field: "username", Kind: String, Min: 1, Max: maxName},
	{Field: "password", Kind: String, Min: 1, Max: maxName},
	{Field: "name", Kind: String, Min: 1, Max: maxName},
}

var Login = Schema{
	{Field: "username", Kind: String, Min: 1, Max: maxName},
	{Field: "password", Kind: String, Min: 1, Max: maxName},
}

// ProfileUpdate accepts an empty payload; absent fields are left alone.
var ProfileUpdate = Schema{
	{Field: "name", Kind: String, Min: 1, Max: maxName, Optional: true},
	{Field: "password", Kind: String, Min: 1, Max: maxName, Optional: true},
}

var ContactCreate = Schema{
	{Field: "first_name", Kind: String, Min: 1, Max: maxName},
	{Field: "last_name", Kind: String, Max: maxName, Optional: true},
	{Field: "email", Kind: Email, Max: maxEmail, Optional: true},
	{Field: "phone", Kind: String, Max: maxPhone, Optional: true},
}

// ContactUpdate is a partial update: only the id is required, first_name is
// checked for length when it is sent.
var ContactUpdate = Schema{
	{Field: "id", Kind: Int, Min: 1},
	{Field: "first_name", Kind: String, Min: 1, Max: maxName, Optional: true},
	{Field: "last_name", Kind: String, Max: maxName, Optional: true},
	{Field: "email", Kind: Email, Max: maxEmail, Optional: true},
	{Field: "phone", Kind: String, Max: maxPhone, Optional: true},
}
