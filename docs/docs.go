// Package docs registers the OpenAPI description served by the swagger UI at /swagger/.
// Keep it in step with the swag annotations on the handlers in internal/handler.
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
        "/approve": {
            "post": {
                "description": "Grants the delegate a spending allowance on the connected wallet's USDC account.\nFields omitted from the body fall back to the values held by the session.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["delegation"],
                "summary": "Approve USDC delegate",
                "parameters": [
                    {
                        "description": "Delegate and amount",
                        "name": "request",
                        "in": "body",
                        "schema": {"$ref": "#/definitions/model.ApproveRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.TxResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/approve/unlimited": {
            "post": {
                "description": "Sets the amount to the largest value an SPL approval can carry (18446744073709.551615 USDC)",
                "produces": ["application/json"],
                "tags": ["delegation"],
                "summary": "Fill unlimited amount",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SessionResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/delegation": {
            "get": {
                "description": "Reads the connected wallet's USDC token account on the active network",
                "produces": ["application/json"],
                "tags": ["delegation"],
                "summary": "Get current delegation",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.DelegationResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/keystore/generate": {
            "post": {
                "description": "Generates a new Solana keypair and saves it to the encrypted .cwt file at SOLANA_FILE_PATH",
                "produces": ["application/json"],
                "tags": ["keystore"],
                "summary": "Generate new keystore",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.GenerateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/network": {
            "post": {
                "description": "Switches between mainnet and devnet. Clears delegate and amount, keeps the wallet connection.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Switch network",
                "parameters": [
                    {
                        "description": "mainnet or devnet",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.NetworkRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/revoke": {
            "post": {
                "description": "Cancels any delegation on the connected wallet's USDC account",
                "produces": ["application/json"],
                "tags": ["delegation"],
                "summary": "Revoke USDC delegate",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.TxResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/session": {
            "get": {
                "description": "Returns network, detected wallets, connection, form fields and the last status message",
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Get session state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SessionResponse"}}
                }
            }
        },
        "/wallet/connect": {
            "post": {
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Connect selected wallet",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/disconnect": {
            "post": {
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Disconnect wallet",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SessionResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "List detected wallets",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.WalletInfo"}}}
                }
            }
        },
        "/wallets/select": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Select wallet",
                "parameters": [
                    {
                        "description": "Wallet name",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.SelectWalletRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "model.ApproveRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "delegateAddress": {"type": "string"}
            }
        },
        "model.DelegationResponse": {
            "type": "object",
            "properties": {
                "balance": {"type": "string"},
                "delegate": {"type": "string"},
                "delegatedAmount": {"type": "string"},
                "mint": {"type": "string"},
                "owner": {"type": "string"},
                "tokenAccount": {"type": "string"}
            }
        },
        "model.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "model.GenerateResponse": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "message": {"type": "string"},
                "qr": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "model.NetworkRequest": {
            "type": "object",
            "properties": {
                "network": {"type": "string"}
            }
        },
        "model.SelectWalletRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"}
            }
        },
        "model.SessionResponse": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "connected": {"type": "boolean"},
                "delegateAddress": {"type": "string"},
                "endpoint": {"type": "string"},
                "lastExplorerUrl": {"type": "string"},
                "lastTxId": {"type": "string"},
                "loading": {"type": "boolean"},
                "mint": {"type": "string"},
                "network": {"type": "string"},
                "publicKey": {"type": "string"},
                "selectedWallet": {"type": "string"},
                "status": {"$ref": "#/definitions/model.StatusInfo"},
                "wallets": {"type": "array", "items": {"$ref": "#/definitions/model.WalletInfo"}}
            }
        },
        "model.StatusInfo": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "severity": {"type": "string"}
            }
        },
        "model.TxResponse": {
            "type": "object",
            "properties": {
                "explorerUrl": {"type": "string"},
                "txId": {"type": "string"}
            }
        },
        "model.WalletInfo": {
            "type": "object",
            "properties": {
                "icon": {"type": "string"},
                "name": {"type": "string"},
                "selected": {"type": "boolean"}
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
	Title:            "USDC Delegate API",
	Description:      "Approve and revoke USDC spending delegations on Solana.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
