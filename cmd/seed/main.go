package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"

	"cms-backend/internal/config"
	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
	"cms-backend/internal/repo/postgres"
	"cms-backend/pkg/connector"
	"cms-backend/pkg/goosehelper"
	"cms-backend/pkg/textutil"
)

const (
	adminUsername = "admin"
	adminPassword = "admin123"
)

var seedCategories = []entity.Category{
	{Name: "Технологии", Slug: "technology", Description: "Новости и статьи о технологиях"},
	{Name: "Путешествия", Slug: "travel", Description: "Истории и советы путешественникам"},
	{Name: "Еда", Slug: "food", Description: "Рецепты и обзоры"},
	{Name: "Образ жизни", Slug: "lifestyle", Description: "Заметки о жизни"},
	{Name: "Бизнес", Slug: "business", Description: "Бизнес и финансы"},
}

var seedPages = []entity.Page{
	{Title: "О нас", Slug: "about", Content: "<p>Небольшой блог о всём подряд.</p>", IsPublished: true},
	{Title: "Контакты", Slug: "contact", Content: "<p>Пишите нам на почту из настроек сайта.</p>", IsPublished: true},
	{Title: "Политика конфиденциальности", Slug: "privacy-policy", Content: "<p>Мы храним только то, что вы сами оставили.</p>", IsPublished: false},
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dbConn, err := connector.GetPostgresConnector(ctx, cfg.DBConnectDSN)
	if err != nil {
		log.Fatalf("Ошибка при подключении к базе данных: %v", err)
	}
	defer func() { _ = dbConn.Close() }()
	if err := goosehelper.MigrateUp(dbConn.DB, postgres.Migrations, postgres.MigrationsDir); err != nil {
		log.Fatalf("Ошибка при выполнении миграций: %v", err)
	}

	settingsRepo := postgres.NewSettings(dbConn)
	categoryRepo := postgres.NewCategory(dbConn)
	userRepo := postgres.NewUser(dbConn)
	postRepo := postgres.NewPost(dbConn)
	pageRepo := postgres.NewPage(dbConn)
	commentRepo := postgres.NewComment(dbConn)

	if err := seedSettings(ctx, settingsRepo); err != nil {
		log.Fatalf("Ошибка при заполнении настроек сайта: %v", err)
	}
	categoryIDs, err := seedCategoryList(ctx, categoryRepo)
	if err != nil {
		log.Fatalf("Ошибка при создании категорий: %v", err)
	}
	adminID, err := seedAdmin(ctx, userRepo)
	if err != nil {
		log.Fatalf("Ошибка при создании администратора: %v", err)
	}
	if err := seedPosts(ctx, postRepo, commentRepo, adminID, categoryIDs); err != nil {
		log.Fatalf("Ошибка при создании постов: %v", err)
	}
	if err := seedPageList(ctx, pageRepo); err != nil {
		log.Fatalf("Ошибка при создании страниц: %v", err)
	}
	log.Info("Тестовые данные загружены")
}

func seedSettings(ctx context.Context, settingsRepo repo.Settings) error {
	settings, err := settingsRepo.GetSettings(ctx)
	if err != nil {
		return err
	}
	if settings.SiteTitle != entity.DefaultSiteSettings().SiteTitle {
		return nil
	}
	settings.SiteTitle = "Мой блог"
	settings.SiteDescription = "Блог на собственной CMS"
	settings.ContactEmail = "admin@example.com"
	settings.FooterText = "© Мой блог"
	return settingsRepo.PutSettings(ctx, settings)
}

func seedCategoryList(ctx context.Context, categoryRepo repo.Category) ([]int, error) {
	ids := make([]int, 0, len(seedCategories))
	for _, category := range seedCategories {
		existing, err := categoryRepo.GetCategoryBySlug(ctx, category.Slug)
		if err == nil {
			ids = append(ids, existing.ID)
			continue
		}
		if !errors.Is(err, repo.ErrCategoryNotFound) {
			return nil, err
		}
		id, err := categoryRepo.AddCategory(ctx, &category)
		if err != nil {
			return nil, err
		}
		log.Infof("Создана категория %s", category.Name)
		ids = append(ids, id)
	}
	return ids, nil
}

func seedAdmin(ctx context.Context, userRepo repo.User) (int, error) {
	existing, err := userRepo.GetUserByUsername(ctx, adminUsername)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, repo.ErrUserNotFound) {
		return 0, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	id, err := userRepo.AddUser(ctx, &entity.User{
		Username:     adminUsername,
		Email:        "admin@example.com",
		FirstName:    "Admin",
		PasswordHash: string(hash),
		IsStaff:      true,
	})
	if err != nil {
		return 0, err
	}
	log.Infof("Создан администратор %s / %s", adminUsername, adminPassword)
	return id, nil
}

// seedPosts раскладывает посты по последним шести месяцам, чтобы графики дашборда были не пустыми
func seedPosts(ctx context.Context, postRepo repo.Post, commentRepo repo.Comment, authorID int, categoryIDs []int) error {
	now := time.Now()
	for i := 0; i < 12; i++ {
		title := fmt.Sprintf("Тестовый пост %d", i+1)
		slug := fmt.Sprintf("sample-post-%d", i+1)
		if _, err := postRepo.GetPostBySlug(ctx, slug); err == nil {
			continue
		} else if !errors.Is(err, repo.ErrPostNotFound) {
			return err
		}

		createdAt := now.AddDate(0, -(i / 2), -(i % 7))
		status := entity.PostPublished
		if i%4 == 3 {
			status = entity.PostDraft
		}
		categoryID := categoryIDs[i%len(categoryIDs)]
		content := fmt.Sprintf("<p>Содержимое поста номер %d. Здесь могла быть ваша статья.</p>", i+1)
		postID, err := postRepo.AddPost(ctx, &entity.Post{
			Title:       title,
			Slug:        slug,
			AuthorID:    authorID,
			CategoryID:  &categoryID,
			Content:     content,
			Excerpt:     textutil.Excerpt(textutil.StripTags(content)),
			Status:      status,
			CreatedAt:   createdAt,
			PublishDate: createdAt,
			Tags:        []string{"пример", fmt.Sprintf("серия-%d", i%3)},
		})
		if err != nil {
			return err
		}
		if status != entity.PostPublished {
			continue
		}
		for j := 0; j < i%3+1; j++ {
			_, err := commentRepo.AddComment(ctx, &entity.Comment{
				PostID:     postID,
				Name:       fmt.Sprintf("Читатель %d", j+1),
				Email:      fmt.Sprintf("reader%d@example.com", j+1),
				Content:    "Спасибо за статью!",
				CreatedAt:  createdAt.Add(time.Duration(j+1) * time.Hour),
				IsApproved: j%2 == 0,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func seedPageList(ctx context.Context, pageRepo repo.Page) error {
	for _, page := range seedPages {
		_, err := pageRepo.AddPage(ctx, &page)
		if errors.Is(err, repo.ErrSlugExists) {
			continue
		}
		if err != nil {
			return err
		}
		log.Infof("Создана страница %s", page.Title)
	}
	return nil
}
