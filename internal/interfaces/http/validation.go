package http

import "regexp"

// Validación de forma/formato en la frontera HTTP. El núcleo confía en lo
// que pasa por aquí, pero la importación masiva NO entra por esta puerta:
// por eso los enums se vuelven a normalizar en el caso de uso.
var (
	zipRe   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	phoneRe = regexp.MustCompile(`^[+]?[1-9][\d\s\-()]{7,15}$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// allowedTypes tipos aceptados cuando el cliente envía uno explícito.
var allowedTypes = map[string]struct{}{
	"Automotive": {}, "RV": {}, "Motorsports": {}, "Maritime": {},
}

type fieldError struct {
	field, message string
}

func checkName(name string, required bool, errs []fieldError) []fieldError {
	if name == "" {
		if required {
			errs = append(errs, fieldError{"name", "name es requerido"})
		}
		return errs
	}
	if len(name) > 255 {
		errs = append(errs, fieldError{"name", "máximo 255 caracteres"})
	}
	return errs
}

func checkAddress(address string, required bool, errs []fieldError) []fieldError {
	if address == "" {
		if required {
			errs = append(errs, fieldError{"address", "address es requerido"})
		}
		return errs
	}
	if len(address) > 500 {
		errs = append(errs, fieldError{"address", "máximo 500 caracteres"})
	}
	return errs
}

func checkCity(city string, required bool, errs []fieldError) []fieldError {
	if city == "" {
		if required {
			errs = append(errs, fieldError{"city", "city es requerido"})
		}
		return errs
	}
	if len(city) > 100 {
		errs = append(errs, fieldError{"city", "máximo 100 caracteres"})
	}
	return errs
}

func checkState(state string, required bool, errs []fieldError) []fieldError {
	if state == "" {
		if required {
			errs = append(errs, fieldError{"state", "state es requerido"})
		}
		return errs
	}
	if len(state) != 2 {
		errs = append(errs, fieldError{"state", "debe ser la abreviatura de 2 letras"})
	}
	return errs
}

func checkZip(zip string, required bool, errs []fieldError) []fieldError {
	if zip == "" {
		if required {
			errs = append(errs, fieldError{"zip_code", "zip_code es requerido"})
		}
		return errs
	}
	if !zipRe.MatchString(zip) {
		errs = append(errs, fieldError{"zip_code", "formato 12345 o 12345-6789"})
	}
	return errs
}

func checkPhone(phone string, required bool, errs []fieldError) []fieldError {
	if phone == "" {
		if required {
			errs = append(errs, fieldError{"phone", "phone es requerido"})
		}
		return errs
	}
	if !phoneRe.MatchString(phone) {
		errs = append(errs, fieldError{"phone", "formato de teléfono inválido"})
	}
	return errs
}

func checkEmail(email string, required bool, errs []fieldError) []fieldError {
	if email == "" {
		if required {
			errs = append(errs, fieldError{"email", "email es requerido"})
		}
		return errs
	}
	if len(email) > 255 || !emailRe.MatchString(email) {
		errs = append(errs, fieldError{"email", "email inválido"})
	}
	return errs
}

func checkType(t string, errs []fieldError) []fieldError {
	if t == "" {
		return errs
	}
	if _, ok := allowedTypes[t]; !ok {
		errs = append(errs, fieldError{"type", "tipo no permitido"})
	}
	return errs
}
