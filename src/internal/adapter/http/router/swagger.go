package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>SWIFT Payments Portal API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "SWIFT Payments Portal API",
    "version": "1.0.0"
  },
  "paths": {
    "/auth/register": {
      "post": {
        "summary": "Register customer",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["fullName", "idNumber", "accountNumber", "password"],
                "properties": {
                  "fullName": {"type": "string"},
                  "idNumber": {"type": "string", "pattern": "^\\d{13}$"},
                  "accountNumber": {"type": "string", "pattern": "^\\d{10,12}$"},
                  "password": {"type": "string", "minLength": 6}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Customer registered, token issued"},
          "400": {"description": "Validation error or duplicate customer"},
          "429": {"description": "Too many attempts"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/auth/login": {
      "post": {
        "summary": "Customer login",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["fullName", "accountNumber", "password"],
                "properties": {
                  "fullName": {"type": "string"},
                  "accountNumber": {"type": "string"},
                  "password": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Token and customer profile"},
          "400": {"description": "Validation error or invalid credentials"},
          "429": {"description": "Too many attempts"}
        }
      }
    },
    "/auth/refresh": {
      "post": {
        "summary": "Refresh customer token",
        "security": [{"CustomerCookie": []}, {"BearerAuth": []}],
        "responses": {
          "200": {"description": "Fresh token"},
          "401": {"description": "Invalid or expired token"}
        }
      }
    },
    "/auth/logout": {
      "post": {
        "summary": "Clear customer session cookie",
        "responses": {
          "200": {"description": "Logged out"}
        }
      }
    },
    "/employees/login": {
      "post": {
        "summary": "Employee login",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["username", "password"],
                "properties": {
                  "username": {"type": "string"},
                  "password": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Token issued"},
          "400": {"description": "Invalid credentials"},
          "429": {"description": "Too many attempts"}
        }
      }
    },
    "/employees/logout": {
      "post": {
        "summary": "Clear employee session cookie",
        "responses": {
          "200": {"description": "Logged out"}
        }
      }
    },
    "/employees/transactions": {
      "get": {
        "summary": "List pending payments with their owners",
        "security": [{"EmployeeCookie": []}, {"BearerAuth": []}],
        "responses": {
          "200": {"description": "Pending payments, oldest first"},
          "401": {"description": "Missing or invalid employee token"},
          "500": {"description": "Failed to fetch transactions"}
        }
      }
    },
    "/employees/submit-swift": {
      "post": {
        "summary": "Submit payments to SWIFT",
        "security": [{"EmployeeCookie": []}, {"BearerAuth": []}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["transactions"],
                "properties": {
                  "transactions": {"type": "array", "items": {"type": "string"}}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Number of payments moved to Submitted"},
          "400": {"description": "Invalid request"},
          "401": {"description": "Missing or invalid employee token"},
          "500": {"description": "Failed to submit transactions"}
        }
      }
    },
    "/payments/make-payment": {
      "post": {
        "summary": "Create a pending SWIFT payment",
        "security": [{"CustomerCookie": []}, {"BearerAuth": []}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["amount", "currency", "payeeAccount", "swiftCode"],
                "properties": {
                  "amount": {"oneOf": [{"type": "number"}, {"type": "string"}]},
                  "currency": {"type": "string", "pattern": "^[A-Z]{3}$"},
                  "payeeAccount": {"type": "string", "pattern": "^\\d{10,12}$"},
                  "swiftCode": {"type": "string", "pattern": "^[A-Z0-9]{8,11}$"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Payment created with status Pending"},
          "400": {"description": "Validation error"},
          "401": {"description": "Missing or invalid customer token"},
          "500": {"description": "Server error while processing payment"}
        }
      }
    },
    "/payments/customer-payments": {
      "get": {
        "summary": "List the caller's payments, newest first",
        "security": [{"CustomerCookie": []}, {"BearerAuth": []}],
        "responses": {
          "200": {"description": "Payments"},
          "401": {"description": "Missing or invalid customer token"},
          "500": {"description": "Failed to fetch your payments"}
        }
      }
    },
    "/admin/employees": {
      "post": {
        "summary": "Provision an employee",
        "security": [{"BasicAuth": []}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["username", "password"],
                "properties": {
                  "username": {"type": "string"},
                  "password": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Employee created"},
          "400": {"description": "Validation error or duplicate username"},
          "401": {"description": "Unauthorized"}
        }
      }
    }
  },
  "components": {
    "securitySchemes": {
      "BasicAuth": {"type": "http", "scheme": "basic"},
      "BearerAuth": {"type": "http", "scheme": "bearer", "bearerFormat": "JWT"},
      "CustomerCookie": {"type": "apiKey", "in": "cookie", "name": "customerToken"},
      "EmployeeCookie": {"type": "apiKey", "in": "cookie", "name": "employeeToken"}
    }
  }
}`
