// @title           Bus Pass API
// @version         1.0
// @description     API для управления проездными билетами: заявки, оплата, выпуск и проверка.
// @contact.name    Bus Pass Support
// @contact.email   support@buspass.local
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization

package main

import "buspass_backend/internal/app"

func main() {
	app.Run()
}
