// Package validation содержит чистые проверки отдельных полей формы.
//
// Каждая проверка возвращает nil, если значение принято, или
// *domain.ValidationError с причиной, которую можно показать пользователю.
// Пакет не обращается к хранилищу и не хранит состояние.
package validation
