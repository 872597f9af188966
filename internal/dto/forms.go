package dto

// Form structs parsed from the site's HTML form posts. Fiber's BodyParser
// fills them from application/x-www-form-urlencoded bodies via the form
// tags.

type RegisterForm struct {
	Username  string `form:"username"`
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Email     string `form:"email"`
	Password  string `form:"password"`
	Password2 string `form:"password2"`
}

type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type ContactForm struct {
	ListingID uint   `form:"-"`
	Name      string `form:"name"`
	Email     string `form:"email"`
	Phone     string `form:"phone"`
	Message   string `form:"message"`
}

type ProfileForm struct {
	Bio   string `form:"bio"`
	Phone string `form:"phone"`
}

type SearchForm struct {
	Keywords string `form:"keywords" query:"keywords"`
	City     string `form:"city" query:"city"`
	State    string `form:"state" query:"state"`
	Bedrooms string `form:"bedrooms" query:"bedrooms"`
	MaxPrice string `form:"price" query:"price"`
}
