package sqlinline

const QInsertItem = `--sql f85b6979-1a37-41f7-9950-620bb626079d
insert into items (id, description, item_type)
values ($1::uuid, $2::text, $3::text);
`

const QSelectItemByID = `--sql c331ee94-e15e-4724-a765-e911504ac152
select id, description, item_type
from items
where id = $1::uuid
limit 1;
`

const QListItems = `--sql 32f61592-b31f-44cf-b22d-b0d06e5ce8ad
select id, description, item_type
from items
order by description, id;
`

const QRenameItem = `--sql fca081c3-12fe-4a95-bb94-7a302d46db51
update items
set description = $2::text
where id = $1::uuid;
`

const QCountItemReferences = `--sql c93487d5-e579-41f5-847c-1b76ef4c6bff
select count(*)
from donation_items
where item_id = $1::uuid;
`

const QDeleteItem = `--sql cb7c58e1-1dc7-4d08-8c7c-8f5f986f7f07
delete from items
where id = $1::uuid;
`
