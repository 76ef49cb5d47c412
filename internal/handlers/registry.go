package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler      *AuthHandler
	PassengerHandler *PassengerHandler
	AdminHandler     *AdminHandler
	ConductorHandler *ConductorHandler
	FileHandler      *FileHandler
}
