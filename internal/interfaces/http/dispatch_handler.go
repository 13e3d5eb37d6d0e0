package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/flowboard-api/internal/domain"
)

// Resource recurso atendido por el despachador genérico /api/*.
// Un método nil responde 404 para esa combinación de verbo y recurso.
type Resource struct {
	List   fiber.Handler                       // GET /api/<recurso>
	Upsert fiber.Handler                       // POST /api/<recurso>
	Delete func(c *fiber.Ctx, id string) error // DELETE /api/<recurso>/<id>
}

// Dispatcher enruta /api/<recurso>[/<sub>] por el primer segmento.
type Dispatcher struct {
	resources map[string]Resource
}

// NewDispatcher construye el despachador sin recursos.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{resources: make(map[string]Resource)}
}

// Register agrega un recurso por nombre.
func (d *Dispatcher) Register(name string, r Resource) {
	d.resources[name] = r
}

func segments(c *fiber.Ctx) []string {
	raw := strings.Trim(c.Params("*"), "/")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "/")
}

// lookup devuelve el recurso del primer segmento. ok=false si ya respondió el error.
func (d *Dispatcher) lookup(c *fiber.Ctx, wantSegs int, has func(Resource) bool) (Resource, []string, bool, error) {
	segs := segments(c)
	if len(segs) == 0 {
		return Resource{}, nil, false, respond(c, fiber.StatusBadRequest, domain.KindValidation, "ningún recurso informado")
	}
	r, ok := d.resources[segs[0]]
	if !ok || len(segs) != wantSegs || !has(r) {
		return Resource{}, nil, false, d.invalid(c, strings.Join(segs, "/"))
	}
	return r, segs, true, nil
}

func (d *Dispatcher) invalid(c *fiber.Ctx, resource string) error {
	return respond(c, fiber.StatusNotFound, domain.KindNotFound, c.Method()+" inválido: /api/"+resource)
}

// Get godoc
// @Summary      Listar recurso (leads, companies)
// @Tags         dispatch
// @Produce      json
// @Param        resource  path  string  true  "leads | companies"
// @Success      200  {object}  dto.LeadListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{resource} [get]
func (d *Dispatcher) Get(c *fiber.Ctx) error {
	r, _, ok, err := d.lookup(c, 1, func(r Resource) bool { return r.List != nil })
	if !ok {
		return err
	}
	return r.List(c)
}

// Post godoc
// @Summary      Crear o actualizar recurso
// @Tags         dispatch
// @Accept       json
// @Produce      json
// @Param        resource  path  string  true  "leads | companies"
// @Success      200  {object}  dto.LeadEnvelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{resource} [post]
func (d *Dispatcher) Post(c *fiber.Ctx) error {
	r, _, ok, err := d.lookup(c, 1, func(r Resource) bool { return r.Upsert != nil })
	if !ok {
		return err
	}
	return r.Upsert(c)
}

// Delete godoc
// @Summary      Eliminar recurso por id
// @Tags         dispatch
// @Produce      json
// @Param        resource  path  string  true  "leads"
// @Param        id        path  string  true  "ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{resource}/{id} [delete]
func (d *Dispatcher) Delete(c *fiber.Ctx) error {
	r, segs, ok, err := d.lookup(c, 2, func(r Resource) bool { return r.Delete != nil })
	if !ok {
		return err
	}
	return r.Delete(c, segs[1])
}
