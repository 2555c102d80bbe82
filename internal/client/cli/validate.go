package cli

import "regexp"

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonNameRe  = regexp.MustCompile(`[^a-zA-Z\s]`)
	minPwChars = 8
)

// validateProfileForm checks the edit-profile inputs before they are sent to
// the server. The returned map mirrors the server's validation payload shape:
// field name to a list of user-facing messages.
func validateProfileForm(name, email string) map[string][]string {
	errs := map[string][]string{}

	if name == "" {
		errs["name"] = []string{"Nama tidak boleh kosong."}
	} else if nonNameRe.MatchString(name) {
		errs["name"] = []string{"Nama hanya boleh berisi huruf dan spasi."}
	}

	if email == "" {
		errs["email"] = []string{"Email tidak boleh kosong."}
	} else if !emailRe.MatchString(email) {
		errs["email"] = []string{"Format email tidak valid."}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validatePasswordForm checks the change-password inputs.
func validatePasswordForm(current, newPw, confirm string) map[string][]string {
	errs := map[string][]string{}

	if current == "" {
		errs["current_password"] = []string{"Kata sandi saat ini tidak boleh kosong."}
	} else if len(current) < minPwChars {
		errs["current_password"] = []string{"Kata sandi saat ini minimal 8 karakter."}
	}

	if newPw == "" {
		errs["new_password"] = []string{"Kata sandi baru tidak boleh kosong."}
	} else if len(newPw) < minPwChars {
		errs["new_password"] = []string{"Kata sandi baru minimal 8 karakter."}
	}

	if confirm == "" {
		errs["confirm_password"] = []string{"Konfirmasi kata sandi tidak boleh kosong."}
	} else if confirm != newPw {
		errs["confirm_password"] = []string{"Konfirmasi kata sandi tidak sesuai."}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
