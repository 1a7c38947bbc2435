package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/stadium --output domain/stadium --outpkg stadiummock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/gazetteer --output domain/gazetteer --outpkg gazetteermock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name SnapshotStore --dir ../domain/team --output domain/team --outpkg teammock --filename snapshot_store_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Geocoder --dir ../usecase --output usecase --outpkg usecasemock --filename geocoder_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name StadiumKnowledgeGraph --dir ../usecase --output usecase --outpkg usecasemock --filename stadium_knowledge_graph_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ForecastProvider --dir ../usecase --output usecase --outpkg usecasemock --filename forecast_provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name TeamDirectory --dir ../usecase --output usecase --outpkg usecasemock --filename team_directory_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name CacheFailureObserver --dir ../usecase --output usecase --outpkg usecasemock --filename cache_failure_observer_mock.go
