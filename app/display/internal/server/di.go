package server

import (
	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/data"
	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/service"
	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/usecase"
	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/view"
	"github.com/google/wire"
)

// ProviderSet 是展示服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,

	// Data providers
	data.NewData,
	data.NewAnalysisRepo,

	// UseCase providers
	usecase.NewSessionStore,

	// View providers
	view.NewRenderer,

	// Service providers
	service.NewDisplayService,
)
