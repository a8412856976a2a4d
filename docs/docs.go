// Package docs contiene la especificación OpenAPI servida en /api/docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/management/pets": {
            "get": {
                "summary": "Mascotas del refugio activo",
                "tags": [
                    "management"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "DOG o CAT",
                        "name": "species",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "AVAILABLE, TAKEN_TEMPORARILY, ...",
                        "name": "status",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "male o female",
                        "name": "gender",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "yes: solo mascotas sin sexo cargado",
                        "name": "missing_information",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Busca en el nombre",
                        "name": "q",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Página (desde 1)",
                        "name": "page",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/pets.petResponse"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            },
            "post": {
                "summary": "Alta de mascota",
                "tags": [
                    "management"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Mascota",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/pets.createPetRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/pets.petResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/management/pets/{petID}": {
            "get": {
                "summary": "Mascota del refugio activo",
                "tags": [
                    "management"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Pet ID",
                        "name": "petID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/pets.petResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            },
            "patch": {
                "summary": "Editar mascota",
                "description": "Campos ausentes no se tocan. Un cambio de estado notifica al equipo.",
                "tags": [
                    "management"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Pet ID",
                        "name": "petID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Campos a modificar",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/pets.updatePetRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/pets.petResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/management/pets/{petID}/photo": {
            "put": {
                "summary": "Subir foto",
                "description": "multipart/form-data con campo \"photo\" (jpeg, png o webp).",
                "tags": [
                    "management"
                ],
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Pet ID",
                        "name": "petID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Imagen",
                        "name": "photo",
                        "in": "formData",
                        "required": true,
                        "type": "file"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/pets.petResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "413": {
                        "description": "Request Entity Too Large",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/management/pets/{petID}/profile-photos": {
            "post": {
                "summary": "Subir foto",
                "description": "multipart/form-data con campo \"photo\" (jpeg, png o webp).",
                "tags": [
                    "management"
                ],
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Pet ID",
                        "name": "petID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Imagen",
                        "name": "photo",
                        "in": "formData",
                        "required": true,
                        "type": "file"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/pets.petResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "413": {
                        "description": "Request Entity Too Large",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/management/requests": {
            "get": {
                "summary": "Solicitudes del refugio activo",
                "tags": [
                    "management"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/adoptions.requestResponse"
                            }
                        }
                    }
                }
            }
        },
        "/management/requests/{requestID}": {
            "patch": {
                "summary": "Cambiar estado de solicitud",
                "description": "PET_TAKEN_TEMPORARY, PET_RETURNED y PET_TAKEN_PERMANENTLY actualizan el estado de la mascota.",
                "tags": [
                    "management"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Request ID",
                        "name": "requestID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Nuevo estado",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/adoptions.updateRequestRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/adoptions.requestResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/management/shelter": {
            "get": {
                "summary": "Refugio activo",
                "tags": [
                    "management"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/shelters.shelterResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            },
            "patch": {
                "summary": "Editar refugio activo",
                "tags": [
                    "management"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Campos a modificar",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/shelters.updateShelterRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/shelters.shelterResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/management/shelters": {
            "get": {
                "summary": "Refugios del usuario",
                "description": "Refugios donde el usuario es staff; marca el seleccionado.",
                "tags": [
                    "management"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/shelters.shelterResponse"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/management/shelters/{shelterID}/switch": {
            "post": {
                "summary": "Cambiar refugio activo",
                "description": "Reescribe la cookie selected_shelter_id si el usuario es staff del refugio.",
                "tags": [
                    "management"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Shelter ID",
                        "name": "shelterID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/shelters.shelterResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/v1/authentication/firebase/connect/": {
            "post": {
                "summary": "Conectar con Firebase",
                "description": "Verifica un ID token de Firebase, crea/actualiza el usuario y devuelve un token de la API.",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "ID token",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/users.connectRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/users.tokenResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/v1/pets/": {
            "get": {
                "summary": "Mascotas por id",
                "description": "Sincroniza mascotas ya vistas; last_update (RFC3339) filtra las modificadas después.",
                "tags": [
                    "pets"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "IDs separados por coma",
                        "name": "pet_ids",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "RFC3339",
                        "name": "last_update",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/pets.petResponse"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/v1/pets/catalog/": {
            "get": {
                "summary": "Catálogo público",
                "description": "Mascotas disponibles de refugios publicados, más nuevas primero.",
                "tags": [
                    "pets"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "DOG o CAT",
                        "name": "pet_type",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Página (desde 1)",
                        "name": "page",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/pets.catalogResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/v1/pets/generate/": {
            "post": {
                "summary": "Generar recomendaciones",
                "description": "Mascotas disponibles de refugios publicados que el usuario aún no juzgó, en orden aleatorio.",
                "tags": [
                    "pets"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Decisiones previas y filtros",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/pets.generateRequest"
                        }
                    },
                    {
                        "description": "Máximo de resultados",
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/pets.petResponse"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/v1/pets/pet/choice/": {
            "post": {
                "summary": "Registrar decisión",
                "description": "Guarda si al usuario le gustó o no la mascota. Repetir la llamada reemplaza la decisión.",
                "tags": [
                    "pets"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Decisión",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/choices.chooseRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/choices.choiceResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/v1/pets/pet/shelter/": {
            "post": {
                "summary": "Quiero adoptar",
                "description": "Registra el interés del usuario y devuelve el contacto del refugio.",
                "tags": [
                    "pets"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Mascota",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/adoptions.submitRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/adoptions.shelterContactResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/v1/pets/{petID}/": {
            "get": {
                "summary": "Perfil de mascota",
                "tags": [
                    "pets"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Pet ID",
                        "name": "petID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/pets.petResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/v1/regions/": {
            "get": {
                "summary": "Listar países y regiones",
                "description": "Países con sus regiones y la cantidad de mascotas publicadas en cada país.",
                "tags": [
                    "regions"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/regions.countryResponse"
                            }
                        }
                    }
                }
            }
        },
        "/v1/shelters/": {
            "get": {
                "summary": "Refugios publicados",
                "tags": [
                    "shelters"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/shelters.publicShelterResponse"
                            }
                        }
                    }
                }
            }
        },
        "/v1/shelters/{shelterID}/pets/": {
            "get": {
                "summary": "Perfil público de refugio",
                "description": "Contacto del refugio y sus mascotas disponibles.",
                "tags": [
                    "shelters"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Shelter ID",
                        "name": "shelterID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Página (desde 1)",
                        "name": "page",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/pets.shelterProfileResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/v1/users/me/": {
            "get": {
                "summary": "Perfil del usuario autenticado",
                "tags": [
                    "auth"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/users.userResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/v1/users/me/choices/": {
            "get": {
                "summary": "Mis decisiones",
                "tags": [
                    "users"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/choices.choiceResponse"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "adoptions.requestResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "pet_id": {
                    "type": "integer"
                },
                "pet_name": {
                    "type": "string"
                },
                "user_id": {
                    "type": "integer"
                },
                "username": {
                    "type": "string"
                },
                "user_email": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "adoptions.shelterContactResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                }
            }
        },
        "adoptions.submitRequest": {
            "type": "object",
            "properties": {
                "pet_id": {
                    "type": "integer"
                }
            },
            "required": [
                "pet_id"
            ]
        },
        "adoptions.updateRequestRequest": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                }
            },
            "required": [
                "status"
            ]
        },
        "choices.choiceResponse": {
            "type": "object",
            "properties": {
                "pet_id": {
                    "type": "integer"
                },
                "is_favorite": {
                    "type": "boolean"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "choices.chooseRequest": {
            "type": "object",
            "properties": {
                "pet_id": {
                    "type": "integer"
                },
                "is_favorite": {
                    "type": "boolean"
                }
            },
            "required": [
                "pet_id"
            ]
        },
        "pets.catalogResponse": {
            "type": "object",
            "properties": {
                "page": {
                    "type": "integer"
                },
                "has_next": {
                    "type": "boolean"
                },
                "results": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/pets.petResponse"
                    }
                }
            }
        },
        "pets.createPetRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "pet_type": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "gender": {
                    "type": "string"
                },
                "short_description": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "age": {
                    "type": "integer"
                },
                "size": {
                    "type": "string"
                },
                "indoor_only": {
                    "type": "boolean"
                },
                "information_for_getpet_team": {
                    "type": "string"
                }
            },
            "required": [
                "name",
                "pet_type"
            ]
        },
        "pets.generateRequest": {
            "type": "object",
            "properties": {
                "liked_pets": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                },
                "disliked_pets": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                },
                "region_code": {
                    "type": "string"
                },
                "pet_type": {
                    "type": "string"
                }
            }
        },
        "pets.petResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "pet_type": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "gender": {
                    "type": "string"
                },
                "photo": {
                    "type": "string"
                },
                "profile_photos": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "short_description": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "age": {
                    "type": "integer"
                },
                "size": {
                    "type": "string"
                },
                "indoor_only": {
                    "type": "boolean"
                },
                "shelter": {
                    "$ref": "#/definitions/pets.shelterContactResponse"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "information_for_getpet_team": {
                    "type": "string"
                }
            }
        },
        "pets.shelterContactResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                }
            }
        },
        "pets.shelterProfileResponse": {
            "type": "object",
            "properties": {
                "shelter": {
                    "$ref": "#/definitions/pets.shelterContactResponse"
                },
                "page": {
                    "type": "integer"
                },
                "has_next": {
                    "type": "boolean"
                },
                "results": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/pets.petResponse"
                    }
                }
            }
        },
        "pets.updatePetRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "gender": {
                    "type": "string"
                },
                "short_description": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "age": {
                    "type": "integer"
                },
                "size": {
                    "type": "string"
                },
                "indoor_only": {
                    "type": "boolean"
                },
                "information_for_getpet_team": {
                    "type": "string"
                }
            }
        },
        "regions.countryResponse": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                },
                "total_pets": {
                    "type": "integer"
                },
                "regions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/regions.regionResponse"
                    }
                }
            }
        },
        "regions.regionResponse": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                }
            }
        },
        "shelters.publicShelterResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "region_id": {
                    "type": "integer"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                }
            }
        },
        "shelters.shelterResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "region_id": {
                    "type": "integer"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "is_published": {
                    "type": "boolean"
                },
                "selected": {
                    "type": "boolean"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "shelters.updateShelterRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "region_id": {
                    "type": "integer"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "is_published": {
                    "type": "boolean"
                }
            }
        },
        "users.connectRequest": {
            "type": "object",
            "properties": {
                "id_token": {
                    "type": "string"
                }
            },
            "required": [
                "id_token"
            ]
        },
        "users.tokenResponse": {
            "type": "object",
            "properties": {
                "key": {
                    "type": "string"
                },
                "expires_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "users.userResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "username": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "first_name": {
                    "type": "string"
                },
                "image_url": {
                    "type": "string"
                },
                "date_joined": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "GetPet API",
	Description:      "API de la app GetPet y del panel de refugios.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
